package repository

import (
	"context"

	"airops-service/internal/domain/entity"
)

// LogRepository is the append-only operations log
type LogRepository interface {
	Append(ctx context.Context, entry *entity.LogEntry) error
	List(ctx context.Context, limit int) ([]entity.LogEntry, error)
	FindByItemID(ctx context.Context, itemID string) ([]entity.LogEntry, error)
}
