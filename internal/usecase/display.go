package usecase

import (
	"fmt"
	"strings"

	"airops-service/internal/domain/entity"
)

func compactClock(clock string) string {
	return strings.ReplaceAll(clock, ":", "")
}

func nameLine(n int, name entity.PassengerName) string {
	line := fmt.Sprintf("%3d.%s", n, name.Display())
	switch name.Type {
	case entity.PassengerStaffDuty:
		line += " (STAFF DUTY " + name.StaffID + ")"
	case entity.PassengerStaffSBY:
		line += " (STAFF SBY " + name.StaffID + ")"
	}
	return line
}

func segmentLine(n int, seg entity.Segment) string {
	f := seg.Flight
	line := fmt.Sprintf("%3d  %-8s %s  %s%s HK%d  %s %s",
		n, f.FlightNumber, seg.Class, f.Origin, f.Destination, seg.Seats,
		compactClock(f.Departure), compactClock(f.ArrivalTime()))
	if f.Gate != "" {
		line += "  GATE " + f.Gate
	}
	if seg.Connection {
		line += "  CNX"
	}
	return line
}

func serviceLine(n int, s entity.ServiceRequest) string {
	line := fmt.Sprintf("%3d SSR %s HK1 %s", n, s.Code, s.Description)
	if s.Chargeable() {
		line += fmt.Sprintf(" %s %s", entity.Currency, s.Price)
	}
	if s.PassengerIndex != nil {
		line += fmt.Sprintf(" /P%d", *s.PassengerIndex+1)
	}
	if s.SegmentIndex != nil {
		line += fmt.Sprintf(" /S%d", *s.SegmentIndex+1)
	}
	return line
}

func contactLine(n int, contact string) string {
	if strings.Contains(contact, "@") {
		return fmt.Sprintf("%3d APE %s", n, contact)
	}
	return fmt.Sprintf("%3d AP %s", n, contact)
}

func fareLines(fare entity.Fare) []string {
	return []string{
		fmt.Sprintf("FARE   %s %9s", entity.Currency, fare.Base),
		fmt.Sprintf("TAX    %s %9s", entity.Currency, fare.Tax),
		fmt.Sprintf("FEES   %s %9s", entity.Currency, fare.Fees),
		fmt.Sprintf("TOTAL  %s %9s", entity.Currency, fare.Total),
	}
}

// draftLines renders a reservation with its elements numbered in
// names, segments, contacts, services order.
func draftLines(header string, d *entity.Draft) []string {
	if d.State() == entity.StateEmpty {
		return []string{"NO ACTIVE PNR"}
	}

	out := []string{header}
	n := 0
	for _, name := range d.Passengers {
		n++
		out = append(out, nameLine(n, name))
	}
	for _, seg := range d.Segments {
		n++
		out = append(out, segmentLine(n, seg))
	}
	for _, contact := range d.Contacts {
		n++
		out = append(out, contactLine(n, contact))
	}
	for _, service := range d.Services {
		n++
		out = append(out, serviceLine(n, service))
	}

	out = append(out, "FP "+d.FormOfPayment)
	if d.Ticketed {
		out = append(out, "TK OK")
	}
	if d.TSTStored() {
		out = append(out, fmt.Sprintf("TST STORED %s %s", entity.Currency, d.Fare.Total))
	}
	if d.AncillaryPriced() {
		out = append(out, fmt.Sprintf("TSM STORED %s %s", entity.Currency, d.AncillaryTotal))
	}
	return out
}
