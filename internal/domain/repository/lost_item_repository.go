package repository

import (
	"context"

	"airops-service/internal/domain/entity"
)

// LostItemRepository defines the interface for lost & found storage
type LostItemRepository interface {
	Create(ctx context.Context, item *entity.LostItem) error
	FindByID(ctx context.Context, id string) (*entity.LostItem, error)
	FindByFRN(ctx context.Context, frn string) ([]entity.LostItem, error)
	List(ctx context.Context, filter entity.LostItemFilter) ([]entity.LostItem, error)
	// Update replaces the stored item only while its status is still
	// expected, otherwise it fails with entity.ErrInvalidTransition.
	Update(ctx context.Context, item *entity.LostItem, expected entity.LostItemStatus) error
	NextSequence(ctx context.Context, name string) (int, error)
}
