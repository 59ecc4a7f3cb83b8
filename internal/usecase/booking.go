package usecase

import (
	"context"
	"errors"
	"fmt"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/templates"
)

var ErrPNRNotFound = errors.New("PNR NOT FOUND")

// BookedPassenger is one distinct passenger of a committed booking
type BookedPassenger struct {
	Name      entity.PassengerName `json:"name"`
	BagCount  int                  `json:"bagCount"`
	BagStatus string               `json:"bagStatus"`
}

// Booking is a committed reservation rebuilt from its booking rows
type Booking struct {
	PNR        string            `json:"pnr"`
	Passengers []BookedPassenger `json:"passengers"`
	Segments   []entity.Segment  `json:"segments"`
}

// BookingReader rebuilds committed reservations from the store
type BookingReader struct {
	passengers repository.PassengerRepository
	flights    repository.FlightRepository
}

// NewBookingReader creates a new booking reader
func NewBookingReader(passengers repository.PassengerRepository, flights repository.FlightRepository) *BookingReader {
	return &BookingReader{passengers: passengers, flights: flights}
}

// Get loads a booking: passengers deduplicated by first+last name, flights by id
func (r *BookingReader) Get(ctx context.Context, pnr string) (*Booking, []entity.Passenger, error) {
	rows, err := r.passengers.FindByPNR(ctx, pnr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load booking %s: %w", pnr, err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrPNRNotFound
	}

	booking := &Booking{PNR: pnr}
	seenNames := make(map[string]bool)
	seenFlights := make(map[string]bool)

	for _, row := range rows {
		key := row.FirstName + "/" + row.LastName
		if !seenNames[key] {
			seenNames[key] = true
			booking.Passengers = append(booking.Passengers, BookedPassenger{
				Name:      row.Name(),
				BagCount:  row.BagCount,
				BagStatus: row.BagStatus,
			})
		}

		if seenFlights[row.FlightID] {
			continue
		}
		seenFlights[row.FlightID] = true

		flight := entity.Flight{ID: row.FlightID, FlightNumber: row.FlightID}
		if found, err := r.flights.FindByID(ctx, row.FlightID); err == nil {
			flight = *found
		}
		booking.Segments = append(booking.Segments, entity.Segment{Flight: flight, Class: row.Class})
	}

	for i := range booking.Segments {
		booking.Segments[i].Seats = len(booking.Passengers)
	}
	return booking, rows, nil
}

// Lines renders the retrieved booking in terminal form
func (b *Booking) Lines() []string {
	out := []string{"RP/" + b.PNR}
	n := 0
	for _, p := range b.Passengers {
		n++
		out = append(out, nameLine(n, p.Name))
	}
	for _, seg := range b.Segments {
		n++
		out = append(out, segmentLine(n, seg))
	}
	for _, p := range b.Passengers {
		out = append(out, fmt.Sprintf("BAGS %s/%s %d %s", p.Name.LastName, p.Name.FirstName, p.BagCount, p.BagStatus))
	}
	return out
}

func legsOf(segments []entity.Segment) []templates.Leg {
	legs := make([]templates.Leg, 0, len(segments))
	for _, seg := range segments {
		f := seg.Flight
		legs = append(legs, templates.Leg{
			FlightNumber:    f.FlightNumber,
			Origin:          f.Origin,
			OriginCity:      f.OriginCity,
			Destination:     f.Destination,
			DestinationCity: f.DestinationCity,
			Departure:       f.Departure,
			Arrival:         f.ArrivalTime(),
			Gate:            f.Gate,
			Class:           seg.Class,
		})
	}
	return legs
}

func fareOf(fare *entity.Fare) *templates.FareBreakdown {
	if fare == nil {
		return nil
	}
	return &templates.FareBreakdown{
		Currency: entity.Currency,
		Base:     fare.Base.String(),
		Tax:      fare.Tax.String(),
		Fees:     fare.Fees.String(),
		Total:    fare.Total.String(),
	}
}

func servicesOf(services []entity.ServiceRequest) []templates.ServiceLine {
	out := make([]templates.ServiceLine, 0, len(services))
	for _, s := range services {
		line := templates.ServiceLine{Code: s.Code, Description: s.Description}
		if s.Chargeable() {
			line.Price = entity.Currency + " " + s.Price.String()
		}
		out = append(out, line)
	}
	return out
}

func toOutgoing(to string, rendered templates.Rendered) entity.OutgoingEmail {
	return entity.OutgoingEmail{
		To:      to,
		Subject: rendered.Subject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	}
}

// confirmationFromDraft renders the confirmation of a just-committed draft
func confirmationFromDraft(pnr string, d entity.Draft) templates.Rendered {
	names := make([]string, 0, len(d.Passengers))
	for _, p := range d.Passengers {
		names = append(names, p.Display())
	}
	return templates.RenderBookingConfirmation(templates.BookingConfirmation{
		PNR:        pnr,
		Passengers: names,
		Legs:       legsOf(d.Segments),
		Fare:       fareOf(d.Fare),
		Services:   servicesOf(d.Services),
	})
}

// confirmationFromBooking renders a confirmation from stored rows; fares are not stored with bookings
func confirmationFromBooking(b *Booking) templates.Rendered {
	names := make([]string, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		names = append(names, p.Name.Display())
	}
	return templates.RenderBookingConfirmation(templates.BookingConfirmation{
		PNR:        b.PNR,
		Passengers: names,
		Legs:       legsOf(b.Segments),
	})
}
