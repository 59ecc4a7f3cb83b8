package templates

import (
	"strings"
	"time"
)

// Address is a postal address as printed in a notification
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// Lines renders the non-empty address parts
func (a Address) Lines() []string {
	var lines []string
	if a.Street != "" {
		lines = append(lines, a.Street)
	}
	city := strings.TrimSpace(strings.Join([]string{a.PostalCode, a.City}, " "))
	if city != "" {
		lines = append(lines, city)
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}

// StatusUpdate is the data of a lost & found status email
type StatusUpdate struct {
	ItemNumber    string
	FileReference string
	Category      string
	Description   string
	Status        string
	FlightNumber  string
	Storage       string
	ClaimantName  string
	Address       *Address
}

var statusTemplate = mustParse("status", `{{define "content"}}
<p>There is an update on your lost &amp; found file <strong>{{.FileReference}}</strong>.</p>
<table cellpadding="4" style="font-size:14px;">
<tr><td>Item</td><td><strong>{{.ItemNumber}}</strong></td></tr>
<tr><td>Category</td><td>{{.Category}}</td></tr>
<tr><td>Description</td><td>{{.Description}}</td></tr>
<tr><td>Status</td><td><strong>{{.Status}}</strong></td></tr>
{{if .FlightNumber}}<tr><td>Flight</td><td>{{.FlightNumber}}</td></tr>{{end}}
{{if .Storage}}<tr><td>Stored at</td><td>{{.Storage}}</td></tr>{{end}}
{{if .ClaimantName}}<tr><td>Claimed by</td><td>{{.ClaimantName}}</td></tr>{{end}}
</table>
{{with .Address}}<h2 style="font-size:16px;">Delivery address</h2>
<p>{{range .Lines}}{{.}}<br>{{end}}</p>{{end}}
{{end}}`)

type statusView struct {
	StatusUpdate
	Title string
}

// RenderStatusUpdate renders a lost & found status notification
func RenderStatusUpdate(data StatusUpdate) Rendered {
	var b strings.Builder
	b.WriteString("LOST & FOUND STATUS UPDATE\n")
	b.WriteString("FILE: " + data.FileReference + "\n")
	b.WriteString("ITEM: " + data.ItemNumber + "\n")
	b.WriteString("CATEGORY: " + data.Category + "\n")
	b.WriteString("DESCRIPTION: " + data.Description + "\n")
	b.WriteString("STATUS: " + data.Status + "\n")
	if data.FlightNumber != "" {
		b.WriteString("FLIGHT: " + data.FlightNumber + "\n")
	}
	if data.Storage != "" {
		b.WriteString("STORED AT: " + data.Storage + "\n")
	}
	if data.ClaimantName != "" {
		b.WriteString("CLAIMED BY: " + data.ClaimantName + "\n")
	}
	if data.Address != nil {
		if lines := data.Address.Lines(); len(lines) > 0 {
			b.WriteString("DELIVERY ADDRESS:\n")
			for _, line := range lines {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	text := b.String()

	return Rendered{
		Subject: "Lost & Found update " + data.FileReference + " - " + data.Status,
		HTML:    execute(statusTemplate, statusView{data, "Lost & Found update"}, text),
		Text:    text,
	}
}

var testTemplate = mustParse("test", `{{define "content"}}
<p>This is a test message from Airport Operations.</p>
<p>Sent at {{.Sent}}.</p>
{{end}}`)

// RenderTestMessage renders the transport check message
func RenderTestMessage(sent time.Time) Rendered {
	stamp := sent.UTC().Format(time.RFC1123)
	text := "THIS IS A TEST MESSAGE FROM AIRPORT OPERATIONS.\nSENT AT " + stamp + "\n"

	return Rendered{
		Subject: "Test message",
		HTML: execute(testTemplate, struct {
			Title string
			Sent  string
		}{"Test message", stamp}, text),
		Text: text,
	}
}
