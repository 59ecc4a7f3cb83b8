package entity

import "time"

// PassengerType classifies how a passenger travels
type PassengerType string

const (
	PassengerRevenue   PassengerType = "REVENUE"
	PassengerStaffDuty PassengerType = "STAFF_DUTY"
	PassengerStaffSBY  PassengerType = "STAFF_SBY"
)

// Bag statuses
const (
	BagStatusNone    = "NONE"
	BagStatusBooked  = "BOOKED"
	BagStatusChecked = "CHECKED"
)

// PassengerName is one name element of a reservation
type PassengerName struct {
	LastName  string        `json:"lastName"`
	FirstName string        `json:"firstName"`
	Title     string        `json:"title"`
	Type      PassengerType `json:"type"`
	StaffID   string        `json:"staffId,omitempty"`
}

// Display renders the name in "DOE/JOHN MR" form
func (n PassengerName) Display() string {
	return n.LastName + "/" + n.FirstName + " " + n.Title
}

// Passenger is one committed booking row: one passenger on one flight
type Passenger struct {
	ID        string        `json:"id" bson:"_id"`
	PNR       string        `json:"pnr" bson:"pnr"`
	FirstName string        `json:"firstName" bson:"firstName"`
	LastName  string        `json:"lastName" bson:"lastName"`
	Title     string        `json:"title" bson:"title"`
	Type      PassengerType `json:"type" bson:"type"`
	StaffID   string        `json:"staffId,omitempty" bson:"staffId,omitempty"`
	FlightID  string        `json:"flightId" bson:"flightId"`
	Class     string        `json:"class" bson:"class"`
	BagCount  int           `json:"bagCount" bson:"bagCount"`
	BagStatus string        `json:"bagStatus" bson:"bagStatus"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

// Name returns the passenger's name element
func (p Passenger) Name() PassengerName {
	return PassengerName{
		LastName:  p.LastName,
		FirstName: p.FirstName,
		Title:     p.Title,
		Type:      p.Type,
		StaffID:   p.StaffID,
	}
}
