package repository

import (
	"context"

	"airops-service/internal/domain/entity"
)

// PassengerRepository defines the booking rows written by the reservation terminal
type PassengerRepository interface {
	CreateBookings(ctx context.Context, passengers []entity.Passenger) error
	FindByPNR(ctx context.Context, pnr string) ([]entity.Passenger, error)
	ExistsPNR(ctx context.Context, pnr string) (bool, error)
	UpdateBagCount(ctx context.Context, passengerID string, bags int) error
	UpdateBagStatus(ctx context.Context, passengerID string, bags int, status string) error
}
