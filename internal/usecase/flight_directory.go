package usecase

import (
	"context"
	"errors"
	"fmt"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
)

// FlightView is a scheduled flight labelled with its carrier and airports.
// Labels are nil when the catalogue has no entry for the code.
type FlightView struct {
	entity.Flight
	Airline            *entity.Airline `json:"airline,omitempty"`
	OriginAirport      *entity.Airport `json:"originAirport,omitempty"`
	DestinationAirport *entity.Airport `json:"destinationAirport,omitempty"`
}

// FlightDirectory joins the flight schedule with the airport and airline catalogue
type FlightDirectory struct {
	flights  repository.FlightRepository
	airports repository.AirportRepository
	airlines repository.AirlineRepository
}

// NewFlightDirectory creates a new flight directory
func NewFlightDirectory(flights repository.FlightRepository, airports repository.AirportRepository, airlines repository.AirlineRepository) *FlightDirectory {
	return &FlightDirectory{
		flights:  flights,
		airports: airports,
		airlines: airlines,
	}
}

// List returns every flight in schedule order with catalogue labels
func (d *FlightDirectory) List(ctx context.Context) ([]FlightView, error) {
	flights, err := d.flights.List(ctx)
	if err != nil {
		return nil, err
	}

	airports := make(map[string]*entity.Airport)
	airlines := make(map[string]*entity.Airline)
	views := make([]FlightView, 0, len(flights))
	for _, f := range flights {
		view, err := d.label(ctx, f, airports, airlines)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Get returns one flight by id with catalogue labels
func (d *FlightDirectory) Get(ctx context.Context, id string) (*FlightView, error) {
	f, err := d.flights.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := d.label(ctx, *f, map[string]*entity.Airport{}, map[string]*entity.Airline{})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// CheckCoverage reports the airport and airline codes used by the schedule
// that the catalogue cannot resolve.
func (d *FlightDirectory) CheckCoverage(ctx context.Context) ([]string, error) {
	views, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var missing []string
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			missing = append(missing, code)
		}
	}
	for _, v := range views {
		if v.Airline == nil {
			add(v.AirlineCode())
		}
		if v.OriginAirport == nil {
			add(v.Origin)
		}
		if v.DestinationAirport == nil {
			add(v.Destination)
		}
	}
	return missing, nil
}

func (d *FlightDirectory) label(ctx context.Context, f entity.Flight, airports map[string]*entity.Airport, airlines map[string]*entity.Airline) (FlightView, error) {
	view := FlightView{Flight: f}

	var err error
	if view.Airline, err = d.airline(ctx, f.AirlineCode(), airlines); err != nil {
		return FlightView{}, err
	}
	if view.OriginAirport, err = d.airport(ctx, f.Origin, airports); err != nil {
		return FlightView{}, err
	}
	if view.DestinationAirport, err = d.airport(ctx, f.Destination, airports); err != nil {
		return FlightView{}, err
	}

	if view.OriginCity == "" && view.OriginAirport != nil {
		view.OriginCity = view.OriginAirport.CityName
	}
	if view.DestinationCity == "" && view.DestinationAirport != nil {
		view.DestinationCity = view.DestinationAirport.CityName
	}
	return view, nil
}

func (d *FlightDirectory) airport(ctx context.Context, code string, cache map[string]*entity.Airport) (*entity.Airport, error) {
	if a, ok := cache[code]; ok {
		return a, nil
	}
	a, err := d.airports.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up airport %s: %w", code, err)
		}
		a = nil
	}
	cache[code] = a
	return a, nil
}

func (d *FlightDirectory) airline(ctx context.Context, code string, cache map[string]*entity.Airline) (*entity.Airline, error) {
	if a, ok := cache[code]; ok {
		return a, nil
	}
	a, err := d.airlines.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up airline %s: %w", code, err)
		}
		a = nil
	}
	cache[code] = a
	return a, nil
}
