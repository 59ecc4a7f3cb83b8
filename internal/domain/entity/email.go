package entity

import (
	"time"
)

// Email kinds
const (
	EmailBookingConfirmation = "BOOKING_CONFIRMATION"
	EmailCheckIn             = "CHECK_IN"
	EmailStatusUpdate        = "STATUS_UPDATE"
	EmailTest                = "TEST"
)

// Send failure reasons
const (
	ReasonMissingConfig = "MISSING_CONFIG"
	ReasonHTTPStatus    = "HTTP_STATUS"
	ReasonNetwork       = "NETWORK"
	ReasonInvalid       = "INVALID_REQUEST"
)

// OutgoingEmail is a rendered message ready for a transport
type OutgoingEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// SendResult is the outcome of one transport call. Transports never return
// errors; callers inspect Success.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SentEmail records a successfully delivered message
type SentEmail struct {
	ID        string    `json:"id" bson:"_id"`
	Kind      string    `json:"kind" bson:"kind"`
	PNR       string    `json:"pnr,omitempty" bson:"pnr,omitempty"`
	ItemID    string    `json:"itemId,omitempty" bson:"itemId,omitempty"`
	To        string    `json:"to" bson:"to"`
	Subject   string    `json:"subject" bson:"subject"`
	MessageID string    `json:"messageId" bson:"messageId"`
	SentAt    time.Time `json:"sentAt" bson:"sentAt"`
}
