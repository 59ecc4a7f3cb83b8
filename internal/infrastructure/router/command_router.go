package router

import (
	"fmt"
	"sort"
	"strings"

	"airops-service/internal/usecase"
	"airops-service/pkg/logger"
)

type route struct {
	rule    usecase.Rule
	handler usecase.CommandHandler
}

// CommandRouter routes terminal lines to handlers by verb. Verbs are matched
// longest first so that overlapping prefixes (SSBY/SS, APE-/AP) resolve to
// the most specific command.
type CommandRouter struct {
	routes  []route
	ordered []route
	logger  logger.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(logger logger.Logger) *CommandRouter {
	return &CommandRouter{
		routes: make([]route, 0),
		logger: logger,
	}
}

// Register registers every verb of a handler
func (r *CommandRouter) Register(handler usecase.CommandHandler) {
	for _, rule := range handler.Rules() {
		rule.Verb = strings.ToUpper(rule.Verb)
		for _, existing := range r.routes {
			if existing.rule.Verb == rule.Verb {
				panic(fmt.Sprintf("router: verb %s registered twice", rule.Verb))
			}
		}
		r.routes = append(r.routes, route{rule: rule, handler: handler})
	}

	r.ordered = make([]route, len(r.routes))
	copy(r.ordered, r.routes)
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return len(r.ordered[i].rule.Verb) > len(r.ordered[j].rule.Verb)
	})

	r.logger.Debug("Registered handler", "handler", fmt.Sprintf("%T", handler), "verbs", len(handler.Rules()))
}

// Route tokenizes a line: upper-case, trim, longest verb prefix, remainder as args
func (r *CommandRouter) Route(line string) (usecase.Command, usecase.CommandHandler, error) {
	normalized := strings.ToUpper(strings.TrimSpace(line))
	cmd := usecase.Command{Line: normalized}

	for _, rt := range r.ordered {
		if !strings.HasPrefix(normalized, rt.rule.Verb) {
			continue
		}

		cmd.Verb = rt.rule.Verb
		cmd.Args = strings.TrimSpace(normalized[len(rt.rule.Verb):])
		if rt.rule.NoArgs && cmd.Args != "" {
			return cmd, nil, usecase.ErrInvalidFormat
		}
		return cmd, rt.handler, nil
	}

	return cmd, nil, usecase.ErrUnknownCommand
}

// Rules returns the grammar in registration order
func (r *CommandRouter) Rules() []usecase.Rule {
	rules := make([]usecase.Rule, 0, len(r.routes))
	for _, rt := range r.routes {
		rules = append(rules, rt.rule)
	}
	return rules
}
