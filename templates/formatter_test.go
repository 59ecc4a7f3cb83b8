package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleLegs() []Leg {
	return []Leg{
		{FlightNumber: "BT 211", Origin: "RIX", OriginCity: "Riga", Destination: "FRA", DestinationCity: "Frankfurt", Departure: "06:30", Arrival: "08:30", Gate: "A4", Class: "Y"},
		{FlightNumber: "LH 400", Origin: "FRA", Destination: "JFK", Departure: "10:30", Arrival: "12:30", Class: "Y"},
	}
}

func TestRenderBookingConfirmation_WithFare(t *testing.T) {
	out := RenderBookingConfirmation(BookingConfirmation{
		PNR:        "ABC123",
		Passengers: []string{"DOE/JOHN MR"},
		Legs:       sampleLegs(),
		Fare:       &FareBreakdown{Currency: "EUR", Base: "21.29", Tax: "13.00", Fees: "11.11", Total: "45.40"},
		Services:   []ServiceLine{{Code: "XBAG", Description: "EXTRA CHECKED BAG 23KG", Price: "EUR 45.00"}},
	})

	assert.Equal(t, "Booking confirmation ABC123", out.Subject)
	assert.Contains(t, out.Text, "RESERVATION CODE: ABC123")
	assert.Contains(t, out.Text, "1. DOE/JOHN MR")
	assert.Contains(t, out.Text, "Riga (RIX) -> Frankfurt (FRA)")
	assert.Contains(t, out.Text, "FRA -> JFK")
	assert.Contains(t, out.Text, "TOTAL EUR 45.40")
	assert.Contains(t, out.Text, "XBAG")

	assert.True(t, strings.HasPrefix(out.HTML, "<!DOCTYPE html>"))
	assert.Contains(t, out.HTML, "ABC123")
	assert.Contains(t, out.HTML, "EUR 45.40")
	assert.Contains(t, out.HTML, "Riga (RIX)")
}

func TestRenderBookingConfirmation_OmitsMissingSections(t *testing.T) {
	out := RenderBookingConfirmation(BookingConfirmation{
		PNR:        "ABC123",
		Passengers: []string{"DOE/JOHN MR"},
		Legs:       sampleLegs()[1:],
	})

	assert.NotContains(t, out.Text, "FARE")
	assert.NotContains(t, out.Text, "SERVICES")
	assert.NotContains(t, out.HTML, "Base fare")
	assert.NotContains(t, out.HTML, "Services")
}

func TestRenderBookingConfirmation_EscapesHTML(t *testing.T) {
	out := RenderBookingConfirmation(BookingConfirmation{
		PNR:        "ABC123",
		Passengers: []string{"<script>X</script>"},
	})

	assert.NotContains(t, out.HTML, "<script>")
	assert.Contains(t, out.HTML, "&lt;script&gt;")
	assert.Contains(t, out.Text, "<script>X</script>")
}

func TestRenderCheckInNotice(t *testing.T) {
	out := RenderCheckInNotice(CheckInNotice{
		PNR:        "ABC123",
		Passengers: []string{"DOE/JOHN MR"},
		Legs:       sampleLegs(),
		Bags:       2,
	})

	assert.Equal(t, "Check-in confirmed ABC123", out.Subject)
	assert.Contains(t, out.Text, "CHECKED BAGS: 2")
	assert.Contains(t, out.Text, "GATE A4")
	assert.Contains(t, out.HTML, "gate <strong>A4</strong>")

	bare := RenderCheckInNotice(CheckInNotice{PNR: "ABC123"})
	assert.NotContains(t, bare.Text, "CHECKED BAGS")
	assert.NotContains(t, bare.HTML, "Please be at gate")
}

func TestRenderStatusUpdate(t *testing.T) {
	out := RenderStatusUpdate(StatusUpdate{
		ItemNumber:    "BK00001XXX",
		FileReference: "AHL00001",
		Category:      "Bags/Luggage",
		Description:   "BLACK SUITCASE [BT:22 CL:BK]",
		Status:        "CLAIMED",
		ClaimantName:  "JANE ROE",
		Address:       &Address{Street: "Brivibas iela 1", City: "Riga", PostalCode: "LV-1010", Country: "Latvia"},
	})

	assert.Equal(t, "Lost & Found update AHL00001 - CLAIMED", out.Subject)
	assert.Contains(t, out.Text, "CLAIMED BY: JANE ROE")
	assert.Contains(t, out.Text, "LV-1010 Riga")
	assert.NotContains(t, out.Text, "FLIGHT:")
	assert.Contains(t, out.HTML, "Delivery address")

	noAddress := RenderStatusUpdate(StatusUpdate{ItemNumber: "LF-2026-0001", FileReference: "FRN00001", Status: "FOUND"})
	assert.NotContains(t, noAddress.Text, "DELIVERY ADDRESS")
	assert.NotContains(t, noAddress.HTML, "Delivery address")
}

func TestRenderTestMessage(t *testing.T) {
	out := RenderTestMessage(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, "Test message", out.Subject)
	assert.Contains(t, out.Text, "Sun, 01 Mar 2026 12:00:00 UTC")
	assert.Contains(t, out.HTML, "test message")
}
