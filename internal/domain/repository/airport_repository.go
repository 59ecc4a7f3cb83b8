package repository

import (
	"context"

	"airops-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport lookups
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
}
