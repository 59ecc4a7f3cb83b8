package seed

import (
	"fmt"
	"sort"
	"strings"

	"airops-service/internal/domain/entity"
	"airops-service/pkg/utils"

	"github.com/BurntSushi/toml"
)

// Catalog is the reference data loaded at start: the flight schedule plus
// the airports and airlines used to label it.
type Catalog struct {
	Airports []entity.Airport `toml:"airports"`
	Airlines []entity.Airline `toml:"airlines"`
	Flights  []entity.Flight  `toml:"flights"`
}

// Load reads a catalog from a TOML file. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	var catalog Catalog
	meta, err := toml.DecodeFile(path, &catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in seed file %s: %v", path, undecoded)
	}

	if err := catalog.normalize(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Decode parses a catalog from TOML text
func Decode(data string) (*Catalog, error) {
	var catalog Catalog
	if _, err := toml.Decode(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	if err := catalog.normalize(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// normalize upper-cases codes, validates schedules, assigns missing ids and
// fills city names from the airport list.
func (c *Catalog) normalize() error {
	cities := make(map[string]string, len(c.Airports))
	for i := range c.Airports {
		c.Airports[i].Code = strings.ToUpper(strings.TrimSpace(c.Airports[i].Code))
		if len(c.Airports[i].Code) != 3 {
			return fmt.Errorf("airport %q: code must be 3 letters", c.Airports[i].Code)
		}
		cities[c.Airports[i].Code] = c.Airports[i].CityName
	}
	for i := range c.Airlines {
		c.Airlines[i].Code = strings.ToUpper(strings.TrimSpace(c.Airlines[i].Code))
	}

	seen := make(map[string]bool, len(c.Flights))
	for i := range c.Flights {
		f := &c.Flights[i]
		f.Origin = strings.ToUpper(strings.TrimSpace(f.Origin))
		f.Destination = strings.ToUpper(strings.TrimSpace(f.Destination))
		f.FlightNumber = strings.ToUpper(strings.TrimSpace(f.FlightNumber))

		if f.ID == "" {
			f.ID = fmt.Sprintf("FL%03d", i+1)
		}
		if seen[f.ID] {
			return fmt.Errorf("flight %s: duplicate id", f.ID)
		}
		seen[f.ID] = true

		if len(f.Origin) != 3 || len(f.Destination) != 3 {
			return fmt.Errorf("flight %s: origin and destination must be 3-letter codes", f.ID)
		}
		if _, err := utils.ParseClock(f.Departure); err != nil {
			return fmt.Errorf("flight %s: %w", f.ID, err)
		}
		if f.OriginCity == "" {
			f.OriginCity = cities[f.Origin]
		}
		if f.DestinationCity == "" {
			f.DestinationCity = cities[f.Destination]
		}
	}

	sort.SliceStable(c.Flights, func(i, j int) bool {
		a, _ := c.Flights[i].DepartureMinutes()
		b, _ := c.Flights[j].DepartureMinutes()
		return a < b
	})
	return nil
}
