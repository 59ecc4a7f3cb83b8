// Package templates renders the notification emails sent by the terminal and
// the lost & found console. Every renderer returns both an HTML body and a
// plain-text fallback; optional sections are left out when their data is absent.
package templates

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
)

// Rendered is a formatted email ready for a transport
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Leg is one flight of an itinerary as shown to a passenger
type Leg struct {
	FlightNumber    string
	Origin          string
	OriginCity      string
	Destination     string
	DestinationCity string
	Departure       string
	Arrival         string
	Gate            string
	Class           string
}

// FareBreakdown is a priced fare, already formatted as amounts
type FareBreakdown struct {
	Currency string
	Base     string
	Tax      string
	Fees     string
	Total    string
}

// ServiceLine is one priced or informational special service
type ServiceLine struct {
	Code        string
	Description string
	Price       string
}

func place(code, city string) string {
	if city == "" {
		return code
	}
	return city + " (" + code + ")"
}

// From renders the departure point
func (l Leg) From() string { return place(l.Origin, l.OriginCity) }

// To renders the arrival point
func (l Leg) To() string { return place(l.Destination, l.DestinationCity) }

const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1f2937;background:#f3f4f6;margin:0;padding:24px;">
<table role="presentation" width="100%" style="max-width:640px;margin:0 auto;background:#ffffff;border-radius:8px;">
<tr><td style="background:#1e3a8a;color:#ffffff;padding:20px 24px;border-radius:8px 8px 0 0;">
<h1 style="margin:0;font-size:20px;">{{.Title}}</h1>
</td></tr>
<tr><td style="padding:24px;">{{template "content" .}}</td></tr>
<tr><td style="padding:16px 24px;font-size:12px;color:#6b7280;">Airport Operations. This is an automated message, please do not reply.</td></tr>
</table>
</body>
</html>{{end}}
{{define "legs"}}<table width="100%" cellpadding="6" style="border-collapse:collapse;font-size:14px;">
<tr style="background:#e5e7eb;"><th align="left">Flight</th><th align="left">From</th><th align="left">To</th><th align="left">Dep</th><th align="left">Arr</th></tr>
{{range .}}<tr><td>{{.FlightNumber}}{{if .Class}} / {{.Class}}{{end}}</td><td>{{.From}}</td><td>{{.To}}</td><td>{{.Departure}}</td><td>{{.Arrival}}</td></tr>
{{end}}</table>{{end}}`

func mustParse(name, content string) *template.Template {
	return template.Must(template.Must(template.New(name).Parse(layoutHTML)).Parse(content))
}

// execute runs a template; a failure falls back to the plain text wrapped in <pre>
func execute(t *template.Template, data interface{}, text string) string {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "<pre>" + template.HTMLEscapeString(text) + "</pre>"
	}
	return buf.String()
}

func writeLegs(b *strings.Builder, legs []Leg) {
	for i, leg := range legs {
		b.WriteString("  ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(leg.FlightNumber)
		if leg.Class != "" {
			b.WriteString(" " + leg.Class)
		}
		b.WriteString("  " + leg.From() + " -> " + leg.To())
		b.WriteString("  " + leg.Departure)
		if leg.Arrival != "" {
			b.WriteString("-" + leg.Arrival)
		}
		if leg.Gate != "" {
			b.WriteString("  GATE " + leg.Gate)
		}
		b.WriteString("\n")
	}
}
