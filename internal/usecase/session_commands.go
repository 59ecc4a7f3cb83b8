package usecase

import (
	"context"
)

// SessionHandler serves CL and HELP
type SessionHandler struct {
	router CommandRouter
}

// NewSessionHandler creates a handler that lists the grammar of router
func NewSessionHandler(router CommandRouter) *SessionHandler {
	return &SessionHandler{router: router}
}

// Rules lists the verbs served
func (h *SessionHandler) Rules() []Rule {
	return []Rule{
		{Verb: "CL", NoArgs: true, Help: "CL                                  CLEAR SCREEN"},
		{Verb: "HELP", NoArgs: true, Help: "HELP                                THIS LIST"},
	}
}

// Handle dispatches on verb
func (h *SessionHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	if cmd.Verb == "CL" {
		return Output{Clear: true}
	}

	out := lines("AVAILABLE COMMANDS")
	for _, rule := range h.router.Rules() {
		out.Print(rule.Help)
	}
	return out
}
