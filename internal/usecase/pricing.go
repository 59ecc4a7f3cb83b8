package usecase

import (
	"context"
	"fmt"

	"airops-service/internal/domain/entity"
)

// PricingHandler serves fare and service pricing and their displays
type PricingHandler struct{}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// Rules lists the verbs served
func (h *PricingHandler) Rules() []Rule {
	return []Rule{
		{Verb: "FXP", NoArgs: true, Help: "FXP                                 PRICE AND STORE TST"},
		{Verb: "FXX", NoArgs: true, Help: "FXX                                 PRICE ONLY"},
		{Verb: "FXG", NoArgs: true, Help: "FXG                                 PRICE AND STORE SERVICES"},
		{Verb: "FXH", NoArgs: true, Help: "FXH                                 PRICE SERVICES ONLY"},
		{Verb: "FXK", NoArgs: true, Help: "FXK                                 CHARGEABLE SERVICE CATALOGUE"},
		{Verb: "TQT", NoArgs: true, Help: "TQT                                 DISPLAY TST"},
		{Verb: "TQM", NoArgs: true, Help: "TQM                                 DISPLAY SERVICE PRICING"},
	}
}

// Handle dispatches on verb
func (h *PricingHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	d := s.draft

	switch cmd.Verb {
	case "FXP":
		fare, err := d.StoreFare()
		if err != nil {
			return fail(err)
		}
		out := h.fareDisplay(d, fare)
		out.Print("TST STORED")
		return out

	case "FXX":
		fare, err := d.QuoteFare()
		if err != nil {
			return fail(err)
		}
		return h.fareDisplay(d, fare)

	case "FXG":
		total, err := d.StoreAncillary()
		if err != nil {
			return fail(err)
		}
		out := h.serviceDisplay(d, total)
		out.Print("SERVICES PRICED - TSM STORED")
		return out

	case "FXH":
		total, err := d.QuoteAncillary()
		if err != nil {
			return fail(err)
		}
		return h.serviceDisplay(d, total)

	case "FXK":
		return h.catalogDisplay()

	case "TQT":
		if !d.TSTStored() {
			return fail(entity.ErrFareNotStored)
		}
		out := lines("TST 1 - " + entity.StatePriced.String())
		out.Print(fareLines(*d.Fare)...)
		out.Print("FP " + d.FormOfPayment)
		return out

	default:
		if err := d.RequireAncillaryPriced(); err != nil {
			return fail(err)
		}
		return h.serviceDisplay(d, d.AncillaryTotal)
	}
}

func (h *PricingHandler) fareDisplay(d *entity.Draft, fare entity.Fare) Output {
	out := lines(fmt.Sprintf("PRICED FARE - %d PAX %d SEG", len(d.Passengers), len(d.Segments)))
	for i, name := range d.Passengers {
		out.Print(fmt.Sprintf("%02d %s", i+1, name.Display()))
	}
	out.Print(fareLines(fare)...)
	return out
}

func (h *PricingHandler) serviceDisplay(d *entity.Draft, total entity.Money) Output {
	out := lines("SERVICES")
	for i, service := range d.Services {
		if service.Chargeable() {
			out.Print(fmt.Sprintf("%02d %-10s %-28s %s %8s", i+1, service.Code, service.Description, entity.Currency, service.Price))
		} else {
			out.Print(fmt.Sprintf("%02d %-10s %-28s INFORMATIONAL", i+1, service.Code, service.Description))
		}
	}
	out.Print(fmt.Sprintf("TOTAL SERVICES %s %s", entity.Currency, total))
	return out
}

func (h *PricingHandler) catalogDisplay() Output {
	out := lines("CHARGEABLE SERVICES")
	for _, def := range entity.ServiceCatalog() {
		if def.Price == 0 {
			continue
		}
		out.Print(fmt.Sprintf("%-10s %-28s %s %8s", def.Code, def.Description, entity.Currency, def.Price))
	}
	out.Print(fmt.Sprintf("%-10s %-28s %s %8s", entity.ExcessWeightPrefix+"<N>", "EXCESS WEIGHT PER KG", entity.Currency, entity.Units(entity.ExcessWeightRate)))
	return out
}
