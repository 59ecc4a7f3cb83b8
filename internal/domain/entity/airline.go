package entity

import (
	"time"
)

// Airline represents an airline entity
type Airline struct {
	ID        uint      `json:"-"`
	Code      string    `json:"code" toml:"code"`
	Name      string    `json:"name" toml:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
