package repository

import (
	"context"
	"errors"

	"airops-service/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// FlightRepository gives read-only access to the seeded schedule
type FlightRepository interface {
	List(ctx context.Context) ([]entity.Flight, error)
	FindByID(ctx context.Context, id string) (*entity.Flight, error)
}
