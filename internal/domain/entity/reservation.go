package entity

import (
	"errors"
	"strings"

	"airops-service/pkg/utils"
)

// ReservationState is the lifecycle stage of a draft reservation
type ReservationState int

const (
	StateEmpty ReservationState = iota
	StateBuilding
	StatePriced
	StateAncillaryPriced
	StateCommitted
)

func (s ReservationState) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateBuilding:
		return "BUILDING"
	case StatePriced:
		return "PRICED"
	case StateAncillaryPriced:
		return "ANCILLARY_PRICED"
	case StateCommitted:
		return "COMMITTED"
	default:
		return "UNKNOWN"
	}
}

// DefaultFormOfPayment is the FOP a fresh draft starts with
const DefaultFormOfPayment = "CASH"

var (
	ErrItineraryIncomplete = errors.New("NEED ITINERARY AND NAME ELEMENTS")
	ErrFareNotStored       = errors.New("NO TST STORED - PRICE WITH FXP FIRST")
	ErrNoServices          = errors.New("NO SSR ELEMENTS TO PRICE")
	ErrAncillaryNotPriced  = errors.New("SERVICES NOT PRICED - USE FXG FIRST")
	ErrInvalidPayment      = errors.New("INVALID FORM OF PAYMENT")
)

// Segment is one flight leg sold into a draft
type Segment struct {
	Flight     Flight `json:"flight"`
	Class      string `json:"class"`
	Seats      int    `json:"seats"`
	Connection bool   `json:"connection"`
}

// Draft is the single in-progress reservation of a terminal session.
// Every transition either succeeds or leaves the draft untouched.
type Draft struct {
	state     ReservationState
	tsmStored bool

	Segments       []Segment        `json:"segments"`
	Passengers     []PassengerName  `json:"passengers"`
	Contacts       []string         `json:"contacts"`
	Services       []ServiceRequest `json:"services"`
	Fare           *Fare            `json:"fare,omitempty"`
	AncillaryTotal Money            `json:"ancillaryTotal"`
	FormOfPayment  string           `json:"formOfPayment"`
	Ticketed       bool             `json:"ticketed"`
}

// NewDraft returns an empty draft
func NewDraft() *Draft {
	return &Draft{FormOfPayment: DefaultFormOfPayment}
}

// State returns the current lifecycle stage
func (d Draft) State() ReservationState {
	return d.state
}

// TSTStored reports whether a fare has been priced and stored
func (d Draft) TSTStored() bool {
	return d.Fare != nil
}

// AncillaryPriced reports whether services have been priced and stored
func (d Draft) AncillaryPriced() bool {
	return d.tsmStored
}

func (d *Draft) advance(to ReservationState) {
	if d.state < to {
		d.state = to
	}
}

// AddSegments appends sold legs in order
func (d *Draft) AddSegments(segments ...Segment) {
	if len(segments) == 0 {
		return
	}
	d.Segments = append(d.Segments, segments...)
	d.advance(StateBuilding)
}

// AddPassenger appends a name element
func (d *Draft) AddPassenger(name PassengerName) {
	d.Passengers = append(d.Passengers, name)
	d.advance(StateBuilding)
}

// AddContact appends a raw contact element
func (d *Draft) AddContact(contact string) {
	d.Contacts = append(d.Contacts, contact)
	d.advance(StateBuilding)
}

// AddService appends an SSR line item
func (d *Draft) AddService(request ServiceRequest) {
	d.Services = append(d.Services, request)
	d.advance(StateBuilding)
}

// Emails returns the contact elements that are valid email addresses
func (d *Draft) Emails() []string {
	var emails []string
	for _, contact := range d.Contacts {
		if utils.IsValidEmail(contact) {
			emails = append(emails, contact)
		}
	}
	return emails
}

// Complete reports whether the draft has the elements needed to price or commit
func (d *Draft) Complete() error {
	if len(d.Segments) == 0 || len(d.Passengers) == 0 {
		return ErrItineraryIncomplete
	}
	return nil
}

// QuoteFare prices the draft without storing the result
func (d *Draft) QuoteFare() (Fare, error) {
	if err := d.Complete(); err != nil {
		return Fare{}, err
	}
	return MockFare(), nil
}

// StoreFare prices the draft and stores the TST
func (d *Draft) StoreFare() (Fare, error) {
	fare, err := d.QuoteFare()
	if err != nil {
		return Fare{}, err
	}
	d.Fare = &fare
	d.advance(StatePriced)
	return fare, nil
}

// QuoteAncillary totals the chargeable services without storing the result
func (d *Draft) QuoteAncillary() (Money, error) {
	if !d.TSTStored() {
		return 0, ErrFareNotStored
	}
	if len(d.Services) == 0 {
		return 0, ErrNoServices
	}

	var total Money
	for _, service := range d.Services {
		if service.Chargeable() {
			total += service.Price
		}
	}
	return total, nil
}

// StoreAncillary prices the services and stores the result
func (d *Draft) StoreAncillary() (Money, error) {
	total, err := d.QuoteAncillary()
	if err != nil {
		return 0, err
	}
	d.AncillaryTotal = total
	d.tsmStored = true
	d.advance(StateAncillaryPriced)
	return total, nil
}

// RequireAncillaryPriced guards commands that operate on priced services
func (d *Draft) RequireAncillaryPriced() error {
	if !d.AncillaryPriced() {
		return ErrAncillaryNotPriced
	}
	return nil
}

// ModifyPayment either keeps the current form of payment (reuse) or records
// a new one, and returns the form of payment in effect.
func (d *Draft) ModifyPayment(fop string, reuse bool) (string, error) {
	if err := d.RequireAncillaryPriced(); err != nil {
		return "", err
	}
	if reuse {
		return d.FormOfPayment, nil
	}

	fop = strings.TrimSpace(fop)
	if fop == "" {
		return "", ErrInvalidPayment
	}
	d.FormOfPayment = fop
	return fop, nil
}

// Reissue guards the EMD reissue command and returns the number of
// chargeable services that would be reissued.
func (d *Draft) Reissue() (int, error) {
	if err := d.RequireAncillaryPriced(); err != nil {
		return 0, err
	}
	n := 0
	for _, service := range d.Services {
		if service.Chargeable() {
			n++
		}
	}
	return n, nil
}

// MarkTicketed sets the ticketing arrangement flag
func (d *Draft) MarkTicketed() {
	d.Ticketed = true
	d.advance(StateBuilding)
}

// Commit validates the draft, returns a committed snapshot and resets the
// draft to its empty shape.
func (d *Draft) Commit() (Draft, error) {
	if err := d.Complete(); err != nil {
		return Draft{}, err
	}

	snapshot := *d
	snapshot.state = StateCommitted
	d.Reset()
	return snapshot, nil
}

// Reset returns the draft to its empty initial shape
func (d *Draft) Reset() {
	*d = *NewDraft()
}
