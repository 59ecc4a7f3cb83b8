package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
)

// SessionStore is the process-wide in-memory store shared by the reservation
// terminal and the lost & found console. Collaborators get narrow views of it
// through the accessor methods; every view shares one lock.
type SessionStore struct {
	mu sync.RWMutex

	flights    []entity.Flight
	passengers []entity.Passenger
	items      []entity.LostItem
	logs       []entity.LogEntry
	emails     []entity.SentEmail
	sequences  map[string]int
}

// NewSessionStore creates a store seeded with a read-only flight schedule
func NewSessionStore(flights []entity.Flight) *SessionStore {
	seeded := make([]entity.Flight, len(flights))
	copy(seeded, flights)

	return &SessionStore{
		flights:   seeded,
		sequences: make(map[string]int),
	}
}

// Flights returns the read-only flight view
func (s *SessionStore) Flights() repository.FlightRepository { return &memoryFlights{s} }

// Passengers returns the booking view
func (s *SessionStore) Passengers() repository.PassengerRepository { return &memoryPassengers{s} }

// LostItems returns the lost & found view
func (s *SessionStore) LostItems() repository.LostItemRepository { return &memoryLostItems{s} }

// Logs returns the operations log view
func (s *SessionStore) Logs() repository.LogRepository { return &memoryLogs{s} }

// SentEmails returns the sent email view
func (s *SessionStore) SentEmails() repository.SentEmailRepository { return &memorySentEmails{s} }

type memoryFlights struct{ s *SessionStore }

func (r *memoryFlights) List(ctx context.Context) ([]entity.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Flight, len(r.s.flights))
	copy(out, r.s.flights)
	return out, nil
}

func (r *memoryFlights) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, flight := range r.s.flights {
		if flight.ID == id {
			found := flight
			return &found, nil
		}
	}
	return nil, fmt.Errorf("flight %s: %w", id, repository.ErrNotFound)
}

type memoryPassengers struct{ s *SessionStore }

func (r *memoryPassengers) CreateBookings(ctx context.Context, passengers []entity.Passenger) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for _, p := range passengers {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		r.s.passengers = append(r.s.passengers, p)
	}
	return nil
}

func (r *memoryPassengers) FindByPNR(ctx context.Context, pnr string) ([]entity.Passenger, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []entity.Passenger
	for _, p := range r.s.passengers {
		if p.PNR == pnr {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryPassengers) ExistsPNR(ctx context.Context, pnr string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.passengers {
		if p.PNR == pnr {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPassengers) UpdateBagCount(ctx context.Context, passengerID string, bags int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.passengers {
		if r.s.passengers[i].ID == passengerID {
			if r.s.passengers[i].BagStatus == entity.BagStatusChecked {
				return nil
			}
			r.s.passengers[i].BagCount = bags
			if bags > 0 && r.s.passengers[i].BagStatus == entity.BagStatusNone {
				r.s.passengers[i].BagStatus = entity.BagStatusBooked
			}
			return nil
		}
	}
	return fmt.Errorf("passenger %s: %w", passengerID, repository.ErrNotFound)
}

func (r *memoryPassengers) UpdateBagStatus(ctx context.Context, passengerID string, bags int, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.passengers {
		if r.s.passengers[i].ID == passengerID {
			r.s.passengers[i].BagCount = bags
			r.s.passengers[i].BagStatus = status
			return nil
		}
	}
	return fmt.Errorf("passenger %s: %w", passengerID, repository.ErrNotFound)
}

type memoryLostItems struct{ s *SessionStore }

func cloneItem(item entity.LostItem) entity.LostItem {
	if item.ClaimedAt != nil {
		claimed := *item.ClaimedAt
		item.ClaimedAt = &claimed
	}
	if item.Address != nil {
		address := *item.Address
		item.Address = &address
	}
	if item.Baggage != nil {
		baggage := *item.Baggage
		item.Baggage = &baggage
	}
	if item.ClaimantPhones != nil {
		item.ClaimantPhones = append([]string(nil), item.ClaimantPhones...)
	}
	return item
}

func (r *memoryLostItems) Create(ctx context.Context, item *entity.LostItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.items {
		if existing.ID == item.ID || existing.ItemNumber == item.ItemNumber {
			return fmt.Errorf("lost item %s: %w", item.ItemNumber, repository.ErrDuplicate)
		}
	}
	r.s.items = append(r.s.items, cloneItem(*item))
	return nil
}

func (r *memoryLostItems) FindByID(ctx context.Context, id string) (*entity.LostItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.items {
		if item.ID == id {
			found := cloneItem(item)
			return &found, nil
		}
	}
	return nil, fmt.Errorf("lost item %s: %w", id, repository.ErrNotFound)
}

func (r *memoryLostItems) FindByFRN(ctx context.Context, frn string) ([]entity.LostItem, error) {
	return r.List(ctx, entity.LostItemFilter{FileReference: frn})
}

func (r *memoryLostItems) List(ctx context.Context, filter entity.LostItemFilter) ([]entity.LostItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query := strings.ToUpper(strings.TrimSpace(filter.Query))
	var out []entity.LostItem
	for _, item := range r.s.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.FileReference != "" && item.FileReference != filter.FileReference {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, cloneItem(item))
	}
	return out, nil
}

func matchesQuery(item entity.LostItem, query string) bool {
	fields := []string{item.ItemNumber, item.FileReference, item.Description, item.PassengerName, item.FlightNumber, item.ClaimantName}
	for _, field := range fields {
		if strings.Contains(strings.ToUpper(field), query) {
			return true
		}
	}
	return false
}

func (r *memoryLostItems) Update(ctx context.Context, item *entity.LostItem, expected entity.LostItemStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.items {
		if r.s.items[i].ID == item.ID {
			if current := r.s.items[i].Status; current != expected {
				return fmt.Errorf("%w: item %s is %s, not %s", entity.ErrInvalidTransition, item.ItemNumber, current, expected)
			}
			r.s.items[i] = cloneItem(*item)
			return nil
		}
	}
	return fmt.Errorf("lost item %s: %w", item.ID, repository.ErrNotFound)
}

func (r *memoryLostItems) NextSequence(ctx context.Context, name string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sequences[name]++
	return r.s.sequences[name], nil
}

type memoryLogs struct{ s *SessionStore }

func (r *memoryLogs) Append(ctx context.Context, entry *entity.LogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	r.s.logs = append(r.s.logs, *entry)
	return nil
}

// List returns the newest entries first; limit <= 0 returns everything
func (r *memoryLogs) List(ctx context.Context, limit int) ([]entity.LogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.LogEntry, 0, len(r.s.logs))
	for i := len(r.s.logs) - 1; i >= 0; i-- {
		out = append(out, r.s.logs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// FindByItemID returns an item's entries in chronological order
func (r *memoryLogs) FindByItemID(ctx context.Context, itemID string) ([]entity.LogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []entity.LogEntry
	for _, entry := range r.s.logs {
		if entry.ItemID == itemID {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

type memorySentEmails struct{ s *SessionStore }

func (r *memorySentEmails) Save(ctx context.Context, email *entity.SentEmail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if email.SentAt.IsZero() {
		email.SentAt = time.Now()
	}
	r.s.emails = append(r.s.emails, *email)
	return nil
}

func (r *memorySentEmails) FindLastByPNR(ctx context.Context, pnr string) (*entity.SentEmail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := len(r.s.emails) - 1; i >= 0; i-- {
		if r.s.emails[i].PNR == pnr {
			found := r.s.emails[i]
			return &found, nil
		}
	}
	return nil, fmt.Errorf("sent email for %s: %w", pnr, repository.ErrNotFound)
}

func (r *memorySentEmails) List(ctx context.Context, limit int) ([]entity.SentEmail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.SentEmail, 0, len(r.s.emails))
	for i := len(r.s.emails) - 1; i >= 0; i-- {
		out = append(out, r.s.emails[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
