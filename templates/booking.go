package templates

import (
	"strconv"
	"strings"
)

// BookingConfirmation is the data of a booking confirmation email
type BookingConfirmation struct {
	PNR        string
	Passengers []string
	Legs       []Leg
	Fare       *FareBreakdown
	Services   []ServiceLine
}

var bookingTemplate = mustParse("booking", `{{define "content"}}
<p>Thank you for your booking. Your reservation code is</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:4px;margin:8px 0 20px;">{{.PNR}}</p>
<h2 style="font-size:16px;">Passengers</h2>
<ul>{{range .Passengers}}<li>{{.}}</li>{{end}}</ul>
<h2 style="font-size:16px;">Itinerary</h2>
{{template "legs" .Legs}}
{{if .Services}}<h2 style="font-size:16px;">Services</h2>
<ul>{{range .Services}}<li>{{.Code}} {{.Description}}{{if .Price}} - {{.Price}}{{end}}</li>{{end}}</ul>{{end}}
{{with .Fare}}<h2 style="font-size:16px;">Fare</h2>
<table cellpadding="4" style="font-size:14px;">
<tr><td>Base fare</td><td align="right">{{.Currency}} {{.Base}}</td></tr>
<tr><td>Taxes</td><td align="right">{{.Currency}} {{.Tax}}</td></tr>
<tr><td>Fees</td><td align="right">{{.Currency}} {{.Fees}}</td></tr>
<tr><td><strong>Total</strong></td><td align="right"><strong>{{.Currency}} {{.Total}}</strong></td></tr>
</table>{{end}}
{{end}}`)

type bookingView struct {
	BookingConfirmation
	Title string
}

// RenderBookingConfirmation renders the confirmation sent after a commit or resend
func RenderBookingConfirmation(data BookingConfirmation) Rendered {
	subject := "Booking confirmation " + data.PNR

	var b strings.Builder
	b.WriteString("BOOKING CONFIRMATION\n")
	b.WriteString("RESERVATION CODE: " + data.PNR + "\n\n")
	b.WriteString("PASSENGERS\n")
	for i, name := range data.Passengers {
		b.WriteString("  " + strconv.Itoa(i+1) + ". " + name + "\n")
	}
	b.WriteString("\nITINERARY\n")
	writeLegs(&b, data.Legs)
	if len(data.Services) > 0 {
		b.WriteString("\nSERVICES\n")
		for _, s := range data.Services {
			b.WriteString("  " + s.Code + " " + s.Description)
			if s.Price != "" {
				b.WriteString("  " + s.Price)
			}
			b.WriteString("\n")
		}
	}
	if f := data.Fare; f != nil {
		b.WriteString("\nFARE\n")
		b.WriteString("  BASE  " + f.Currency + " " + f.Base + "\n")
		b.WriteString("  TAX   " + f.Currency + " " + f.Tax + "\n")
		b.WriteString("  FEES  " + f.Currency + " " + f.Fees + "\n")
		b.WriteString("  TOTAL " + f.Currency + " " + f.Total + "\n")
	}
	text := b.String()

	return Rendered{
		Subject: subject,
		HTML:    execute(bookingTemplate, bookingView{data, "Booking confirmation"}, text),
		Text:    text,
	}
}
