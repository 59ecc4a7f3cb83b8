package usecase

import (
	"context"
	"errors"
)

var (
	ErrUnknownCommand = errors.New("UNKNOWN COMMAND - TYPE HELP")
	ErrInvalidFormat  = errors.New("INVALID FORMAT")
	ErrSystem         = errors.New("SYSTEM ERROR - RETRY")
)

// Rule is one entry of the command grammar
type Rule struct {
	// Verb is the literal prefix that selects the command
	Verb string
	// NoArgs rejects any text after the verb
	NoArgs bool
	// Help is the one-line usage shown by HELP
	Help string
}

// Command is a tokenized terminal line
type Command struct {
	Line string
	Verb string
	Args string
}

// CommandHandler executes one family of terminal verbs
type CommandHandler interface {
	// Rules lists the verbs this handler serves
	Rules() []Rule

	// Handle runs the command against the session; it never fails, errors
	// become output lines
	Handle(ctx context.Context, s *Session, cmd Command) Output
}

// CommandRouter resolves a line to its handler
type CommandRouter interface {
	// Register adds every verb of a handler to the rule table
	Register(handler CommandHandler)

	// Route tokenizes a line and returns the command and its handler
	Route(line string) (Command, CommandHandler, error)

	// Rules lists the registered grammar in registration order
	Rules() []Rule
}

// Output is the result of one command: synchronous lines plus work that
// may only start once those lines are in the transcript.
type Output struct {
	Lines    []string
	Clear    bool
	deferred []func()
}

// Print appends synchronous lines
func (o *Output) Print(lines ...string) {
	o.Lines = append(o.Lines, lines...)
}

// Defer schedules fn to run after the synchronous lines are flushed
func (o *Output) Defer(fn func()) {
	o.deferred = append(o.deferred, fn)
}

// lines builds an output with the given lines
func lines(l ...string) Output {
	return Output{Lines: l}
}

// fail renders an error as a single transcript line
func fail(err error) Output {
	return Output{Lines: []string{err.Error()}}
}
