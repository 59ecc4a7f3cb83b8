package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/utils"
)

// Connection window between assumed arrival of leg 1 and departure of leg 2
const (
	MinConnectionMinutes = 90
	MaxConnectionMinutes = 480
)

// Result caps
const (
	maxAllFlights   = 50
	maxSingleFilter = 10
)

var (
	errNoSearch    = errors.New("NO AVAILABILITY DISPLAYED - USE AN FIRST")
	errLineRange   = errors.New("LINE NUMBER NOT IN AVAILABILITY")
	errSchedule    = errors.New("SCHEDULE UNAVAILABLE")
	errSeatsNumber = errors.New("INVALID NUMBER OF SEATS")

	originOnly  = regexp.MustCompile(`^([A-Z]{3})$`)
	destOnly    = regexp.MustCompile(`^/([A-Z]{3})$`)
	cityPair    = regexp.MustCompile(`^([A-Z]{3})(?:\s+|/)?([A-Z]{3})$`)
	sellPattern = regexp.MustCompile(`^(\d{1,2})([A-Z])(\d{1,3})$`)
)

// Availability is one line of an availability display: a direct flight or
// a two-leg connection.
type Availability struct {
	Flight            entity.Flight  `json:"flight"`
	Connection        *entity.Flight `json:"connection,omitempty"`
	ConnectionMinutes int            `json:"connectionMinutes,omitempty"`
}

// AvailabilityQuery is a parsed AN request; empty codes match everything
type AvailabilityQuery struct {
	Origin      string
	Destination string
}

// ParseAvailability parses the arguments of AN: "", "RIX", "RIXJFK",
// "RIX JFK", "RIX/JFK" or "/JFK".
func ParseAvailability(args string) (AvailabilityQuery, error) {
	switch {
	case args == "":
		return AvailabilityQuery{}, nil
	case originOnly.MatchString(args):
		return AvailabilityQuery{Origin: args}, nil
	case destOnly.MatchString(args):
		return AvailabilityQuery{Destination: args[1:]}, nil
	}

	if m := cityPair.FindStringSubmatch(args); m != nil {
		return AvailabilityQuery{Origin: m[1], Destination: m[2]}, nil
	}
	return AvailabilityQuery{}, ErrInvalidFormat
}

// SearchAvailability filters a schedule. A city pair returns direct flights
// plus connections whose transfer fits the connection window.
func SearchAvailability(flights []entity.Flight, q AvailabilityQuery) []Availability {
	results := make([]Availability, 0)

	switch {
	case q.Origin == "" && q.Destination == "":
		for _, f := range flights {
			results = append(results, Availability{Flight: f})
		}
		return capResults(sortAvailability(results), maxAllFlights)

	case q.Destination == "":
		for _, f := range flights {
			if f.Origin == q.Origin {
				results = append(results, Availability{Flight: f})
			}
		}
		return capResults(sortAvailability(results), maxSingleFilter)

	case q.Origin == "":
		for _, f := range flights {
			if f.Destination == q.Destination {
				results = append(results, Availability{Flight: f})
			}
		}
		return capResults(sortAvailability(results), maxSingleFilter)
	}

	for _, leg1 := range flights {
		if leg1.Origin != q.Origin {
			continue
		}
		if leg1.Destination == q.Destination {
			results = append(results, Availability{Flight: leg1})
			continue
		}

		arrival, err := leg1.ArrivalMinutes()
		if err != nil {
			continue
		}
		for _, leg2 := range flights {
			if leg2.Origin != leg1.Destination || leg2.Destination != q.Destination {
				continue
			}
			departure, err := leg2.DepartureMinutes()
			if err != nil {
				continue
			}
			gap := departure - arrival
			if gap < MinConnectionMinutes || gap > MaxConnectionMinutes {
				continue
			}
			connection := leg2
			results = append(results, Availability{Flight: leg1, Connection: &connection, ConnectionMinutes: gap})
		}
	}
	return sortAvailability(results)
}

func sortAvailability(results []Availability) []Availability {
	sort.SliceStable(results, func(i, j int) bool {
		a, _ := results[i].Flight.DepartureMinutes()
		b, _ := results[j].Flight.DepartureMinutes()
		if a != b {
			return a < b
		}
		return results[i].Connection == nil && results[j].Connection != nil
	})
	return results
}

func capResults(results []Availability, limit int) []Availability {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}

func (q AvailabilityQuery) label() string {
	switch {
	case q.Origin == "" && q.Destination == "":
		return "ALL FLIGHTS"
	case q.Destination == "":
		return "DEPARTURES " + q.Origin
	case q.Origin == "":
		return "ARRIVALS " + q.Destination
	default:
		return q.Origin + "-" + q.Destination
	}
}

func flightColumns(f entity.Flight) string {
	line := fmt.Sprintf("%-8s %s%s %s %s  %-4s %s",
		f.FlightNumber, f.Origin, f.Destination,
		compactClock(f.Departure), compactClock(f.ArrivalTime()), f.Gate, f.Aircraft)
	if f.EstimatedDeparture != "" && f.EstimatedDeparture != f.Departure {
		line += "  ETD " + compactClock(f.EstimatedDeparture)
	}
	return line
}

// AvailabilityHandler serves AN (search) and SS (sell from the last search)
type AvailabilityHandler struct {
	flights repository.FlightRepository
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(flights repository.FlightRepository) *AvailabilityHandler {
	return &AvailabilityHandler{flights: flights}
}

// Rules lists the verbs served
func (h *AvailabilityHandler) Rules() []Rule {
	return []Rule{
		{Verb: "AN", Help: "AN[ORG][DST] | AN ORG DST | AN/DST   AVAILABILITY"},
		{Verb: "SS", Help: "SS<SEATS><CLASS><LINE>            SELL FROM AVAILABILITY"},
	}
}

// Handle dispatches on verb
func (h *AvailabilityHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	if cmd.Verb == "SS" {
		return h.sell(s, cmd.Args)
	}
	return h.search(ctx, s, cmd.Args)
}

func (h *AvailabilityHandler) search(ctx context.Context, s *Session, args string) Output {
	query, err := ParseAvailability(args)
	if err != nil {
		return fail(err)
	}

	flights, err := h.flights.List(ctx)
	if err != nil {
		return fail(errSchedule)
	}

	results := SearchAvailability(flights, query)
	s.lastSearch = results

	out := Output{}
	out.Print("** AVAILABILITY " + query.label() + " **")
	if len(results) == 0 {
		out.Print("NO FLIGHTS FOUND")
		return out
	}
	for i, r := range results {
		out.Print(fmt.Sprintf("%2d %s", i+1, flightColumns(r.Flight)))
		if r.Connection != nil {
			out.Print(fmt.Sprintf("   %s  CNX %s", flightColumns(*r.Connection), utils.FormatDuration(r.ConnectionMinutes)))
		}
	}
	return out
}

func (h *AvailabilityHandler) sell(s *Session, args string) Output {
	m := sellPattern.FindStringSubmatch(args)
	if m == nil {
		return fail(ErrInvalidFormat)
	}
	if s.lastSearch == nil {
		return fail(errNoSearch)
	}

	seats, _ := strconv.Atoi(m[1])
	class := m[2]
	line, _ := strconv.Atoi(m[3])

	if seats < 1 || seats > 9 {
		return fail(errSeatsNumber)
	}
	if line < 1 || line > len(s.lastSearch) {
		return fail(errLineRange)
	}

	picked := s.lastSearch[line-1]
	segments := []entity.Segment{{Flight: picked.Flight, Class: class, Seats: seats}}
	if picked.Connection != nil {
		segments = append(segments, entity.Segment{Flight: *picked.Connection, Class: class, Seats: seats, Connection: true})
	}

	first := len(s.draft.Segments)
	s.draft.AddSegments(segments...)

	out := Output{}
	for i, seg := range segments {
		out.Print(segmentLine(first+i+1, seg))
	}
	return out
}
