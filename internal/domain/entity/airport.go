package entity

import (
	"time"
)

// Airport carries the descriptive information used to label flights
type Airport struct {
	ID        uint      `json:"-"`
	Code      string    `json:"code" toml:"code"`
	Name      string    `json:"name" toml:"name"`
	CityName  string    `json:"cityName" toml:"city"`
	TzName    string    `json:"tzName" toml:"tz"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
