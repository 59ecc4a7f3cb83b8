package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"airops-service/pkg/logger"
	"airops-service/pkg/metrics"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("terminal session not found")

// Terminal runs reservation terminal sessions
type Terminal struct {
	router  CommandRouter
	metrics *metrics.Metrics
	logger  logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewTerminal creates a terminal over a fully registered router
func NewTerminal(router CommandRouter, metrics *metrics.Metrics, logger logger.Logger) *Terminal {
	return &Terminal{
		router:   router,
		metrics:  metrics,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// OpenSession starts a new session with an empty draft
func (t *Terminal) OpenSession() *Session {
	s := newSession(uuid.NewString(), time.Now())

	t.mu.Lock()
	t.sessions[s.ID] = s
	t.mu.Unlock()

	t.logger.Info("Terminal session opened", "sessionID", s.ID)
	return s
}

// Session finds an open session
func (t *Terminal) Session(id string) (*Session, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// CloseSession discards a session and its draft
func (t *Terminal) CloseSession(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(t.sessions, id)
	t.logger.Info("Terminal session closed", "sessionID", id)
	return nil
}

// CloseIdle closes sessions inactive for longer than maxIdle and returns how many were closed
func (t *Terminal) CloseIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	t.mu.Lock()
	defer t.mu.Unlock()

	closed := 0
	for id, s := range t.sessions {
		if s.LastActive().Before(cutoff) {
			delete(t.sessions, id)
			closed++
		}
	}
	return closed
}

// Execute runs one line in a session and returns the synchronous lines it
// produced, echo included. Deferred work is started only after those lines
// are in the transcript.
func (t *Terminal) Execute(ctx context.Context, sessionID, line string) ([]string, error) {
	s, err := t.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return t.Run(ctx, s, line), nil
}

// Run executes a line against a session
func (t *Terminal) Run(ctx context.Context, s *Session, line string) []string {
	start := time.Now()

	verb, out, produced := t.execute(ctx, s, line)
	for _, fn := range out.deferred {
		fn()
	}

	t.metrics.ObserveCommand(verb, time.Since(start))
	t.logger.Debug("Terminal command executed", "sessionID", s.ID, "verb", verb, "lines", len(out.Lines))

	return produced
}

// execute routes and handles one line under the session's command lock.
// A handler panic is logged and reported as a system error line.
func (t *Terminal) execute(ctx context.Context, s *Session, line string) (verb string, out Output, produced []string) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	cmd, handler, err := t.router.Route(line)
	verb = cmd.Verb
	switch {
	case err != nil:
		out = fail(err)
		if verb == "" {
			verb = "UNKNOWN"
		}
	default:
		out = t.handle(ctx, s, handler, cmd)
	}

	produced = append([]string{"> " + cmd.Line}, out.Lines...)
	if out.Clear {
		s.clear()
		produced = nil
	} else {
		s.Append(produced...)
	}
	s.touch(time.Now())
	return verb, out, produced
}

func (t *Terminal) handle(ctx context.Context, s *Session, handler CommandHandler, cmd Command) (out Output) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("Terminal command panicked", "sessionID", s.ID, "verb", cmd.Verb, "panic", r)
			t.metrics.Error("terminal_panic")
			out = fail(ErrSystem)
		}
	}()
	return handler.Handle(ctx, s, cmd)
}
