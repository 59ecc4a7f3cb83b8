package mocks

import (
	"context"

	"airops-service/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockAirportRepository is a mock implementation of repository.AirportRepository
type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Airport), args.Error(1)
}

// MockAirlineRepository is a mock implementation of repository.AirlineRepository
type MockAirlineRepository struct {
	mock.Mock
}

func (m *MockAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Airline), args.Error(1)
}
