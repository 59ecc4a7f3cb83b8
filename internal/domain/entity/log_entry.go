package entity

import "time"

// Log sources
const (
	SourceTerminal  = "TERMINAL"
	SourceLostFound = "LOST_FOUND"
	SourceEmail     = "EMAIL"
	SourceSystem    = "SYSTEM"
)

// Log severities
const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityError = "ERROR"
)

// LogEntry is one append-only operations log record. ItemID and PNR link the
// entry to the record it describes.
type LogEntry struct {
	ID        string    `json:"id" bson:"_id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Source    string    `json:"source" bson:"source"`
	Severity  string    `json:"severity" bson:"severity"`
	Message   string    `json:"message" bson:"message"`
	ItemID    string    `json:"itemId,omitempty" bson:"itemId,omitempty"`
	PNR       string    `json:"pnr,omitempty" bson:"pnr,omitempty"`
}
