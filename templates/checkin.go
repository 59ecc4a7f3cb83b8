package templates

import (
	"strconv"
	"strings"
)

// CheckInNotice is the data of a check-in confirmation email
type CheckInNotice struct {
	PNR        string
	Passengers []string
	Legs       []Leg
	Bags       int
}

var checkInTemplate = mustParse("checkin", `{{define "content"}}
<p>You are checked in for booking <strong>{{.PNR}}</strong>.</p>
<ul>{{range .Passengers}}<li>{{.}}</li>{{end}}</ul>
{{template "legs" .Legs}}
{{if .Bags}}<p>Checked bags: <strong>{{.Bags}}</strong> per passenger.</p>{{end}}
{{with .FirstGate}}<p>Please be at gate <strong>{{.}}</strong> at least 30 minutes before departure.</p>{{end}}
{{end}}`)

type checkInView struct {
	CheckInNotice
	Title     string
	FirstGate string
}

// RenderCheckInNotice renders the notice sent when a booking is checked in
func RenderCheckInNotice(data CheckInNotice) Rendered {
	var gate string
	if len(data.Legs) > 0 {
		gate = data.Legs[0].Gate
	}

	var b strings.Builder
	b.WriteString("CHECK-IN CONFIRMED\n")
	b.WriteString("RESERVATION CODE: " + data.PNR + "\n\n")
	for i, name := range data.Passengers {
		b.WriteString("  " + strconv.Itoa(i+1) + ". " + name + "\n")
	}
	b.WriteString("\n")
	writeLegs(&b, data.Legs)
	if data.Bags > 0 {
		b.WriteString("\nCHECKED BAGS: " + strconv.Itoa(data.Bags) + " PER PASSENGER\n")
	}
	if gate != "" {
		b.WriteString("\nPLEASE BE AT GATE " + gate + " AT LEAST 30 MINUTES BEFORE DEPARTURE\n")
	}
	text := b.String()

	return Rendered{
		Subject: "Check-in confirmed " + data.PNR,
		HTML:    execute(checkInTemplate, checkInView{data, "Check-in confirmed", gate}, text),
		Text:    text,
	}
}
