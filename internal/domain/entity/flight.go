package entity

import (
	"strings"

	"airops-service/pkg/utils"
)

// AssumedBlockMinutes is the flight time assumed for every leg when
// computing arrival and connection windows.
const AssumedBlockMinutes = 120

// Flight is a seeded, read-only scheduled departure
type Flight struct {
	ID                 string `json:"id" toml:"id"`
	FlightNumber       string `json:"flightNumber" toml:"flight_number"`
	Origin             string `json:"origin" toml:"origin"`
	Destination        string `json:"destination" toml:"destination"`
	OriginCity         string `json:"originCity,omitempty" toml:"origin_city"`
	DestinationCity    string `json:"destinationCity,omitempty" toml:"destination_city"`
	Departure          string `json:"departure" toml:"departure"`
	EstimatedDeparture string `json:"estimatedDeparture,omitempty" toml:"estimated_departure"`
	Gate               string `json:"gate" toml:"gate"`
	Aircraft           string `json:"aircraft" toml:"aircraft"`
}

// AirlineCode returns the two-character carrier prefix of the flight number
func (f Flight) AirlineCode() string {
	code := strings.ReplaceAll(f.FlightNumber, " ", "")
	if len(code) >= 2 {
		return code[:2]
	}
	return code
}

// DepartureMinutes returns the scheduled departure as minutes after midnight
func (f Flight) DepartureMinutes() (int, error) {
	return utils.ParseClock(f.Departure)
}

// ArrivalMinutes returns the assumed arrival (departure + block time)
func (f Flight) ArrivalMinutes() (int, error) {
	dep, err := f.DepartureMinutes()
	if err != nil {
		return 0, err
	}
	return dep + AssumedBlockMinutes, nil
}

// ArrivalTime is ArrivalMinutes rendered as HH:MM, empty when the schedule is unparseable
func (f Flight) ArrivalTime() string {
	arr, err := f.ArrivalMinutes()
	if err != nil {
		return ""
	}
	return utils.FormatClock(arr)
}
