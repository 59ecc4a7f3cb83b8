package repository

import (
	"context"
	"fmt"
	"strings"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
)

// MemoryAirportRepository serves airports from the seed file
type MemoryAirportRepository struct {
	airports map[string]entity.Airport
}

// NewMemoryAirportRepository indexes airports by code
func NewMemoryAirportRepository(airports []entity.Airport) repository.AirportRepository {
	index := make(map[string]entity.Airport, len(airports))
	for _, airport := range airports {
		index[strings.ToUpper(airport.Code)] = airport
	}
	return &MemoryAirportRepository{airports: index}
}

// GetByCode finds an airport by IATA code
func (r *MemoryAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	airport, ok := r.airports[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("airport %s: %w", code, repository.ErrNotFound)
	}
	return &airport, nil
}

// MemoryAirlineRepository serves airlines from the seed file
type MemoryAirlineRepository struct {
	airlines map[string]entity.Airline
}

// NewMemoryAirlineRepository indexes airlines by code
func NewMemoryAirlineRepository(airlines []entity.Airline) repository.AirlineRepository {
	index := make(map[string]entity.Airline, len(airlines))
	for _, airline := range airlines {
		index[strings.ToUpper(airline.Code)] = airline
	}
	return &MemoryAirlineRepository{airlines: index}
}

// GetByCode finds an airline by designator
func (r *MemoryAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	airline, ok := r.airlines[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("airline %s: %w", code, repository.ErrNotFound)
	}
	return &airline, nil
}
