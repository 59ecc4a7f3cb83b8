package usecase

import (
	"sync"
	"time"

	"airops-service/internal/domain/entity"
)

// Session is one reservation terminal: its draft, its last availability
// search and its transcript. Commands of one session run one at a time;
// asynchronous results may append to the transcript concurrently.
type Session struct {
	ID        string
	CreatedAt time.Time

	// cmdMu serialises command execution
	cmdMu      sync.Mutex
	draft      *entity.Draft
	lastSearch []Availability

	mu         sync.Mutex
	transcript []string
	lastActive time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		draft:      entity.NewDraft(),
		lastActive: now,
	}
}

// Append adds lines to the transcript
func (s *Session) Append(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, lines...)
}

// Transcript returns a copy of every line since the last clear
func (s *Session) Transcript() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// LastActive is the time of the last executed command
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
}

// Draft returns a copy of the in-progress reservation
func (s *Session) Draft() entity.Draft {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()
	return *s.draft
}
