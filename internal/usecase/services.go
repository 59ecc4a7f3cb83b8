package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"airops-service/internal/domain/entity"
)

var (
	errUnknownSSR     = errors.New("SSR CODE NOT RECOGNISED")
	errPassengerAssoc = errors.New("PASSENGER ASSOCIATION NOT IN PNR")
	errSegmentAssoc   = errors.New("SEGMENT ASSOCIATION NOT IN PNR")
)

// ServiceQuery is a parsed SR request. Indexes are 1-based as typed; zero
// means the request is not associated.
type ServiceQuery struct {
	Code      string
	Passenger int
	Segment   int
}

// ParseService parses "XBAG", "XBAG/P1", "XBAG/P1/S2" and "XWGT-KG10/S1"
func ParseService(args string) (ServiceQuery, error) {
	parts := strings.Split(args, "/")
	q := ServiceQuery{Code: strings.TrimSpace(parts[0])}
	if q.Code == "" || strings.ContainsAny(q.Code, " ") {
		return ServiceQuery{}, ErrInvalidFormat
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if len(part) < 2 {
			return ServiceQuery{}, ErrInvalidFormat
		}
		n, err := strconv.Atoi(part[1:])
		if err != nil || n < 1 {
			return ServiceQuery{}, ErrInvalidFormat
		}
		switch part[0] {
		case 'P':
			if q.Passenger != 0 {
				return ServiceQuery{}, ErrInvalidFormat
			}
			q.Passenger = n
		case 'S':
			if q.Segment != 0 {
				return ServiceQuery{}, ErrInvalidFormat
			}
			q.Segment = n
		default:
			return ServiceQuery{}, ErrInvalidFormat
		}
	}
	return q, nil
}

// ServiceHandler serves SR: special service requests
type ServiceHandler struct{}

// NewServiceHandler creates a new SSR handler
func NewServiceHandler() *ServiceHandler {
	return &ServiceHandler{}
}

// Rules lists the verbs served
func (h *ServiceHandler) Rules() []Rule {
	return []Rule{
		{Verb: "SR", Help: "SR <CODE>[/P<N>][/S<N>]             SPECIAL SERVICE REQUEST"},
	}
}

// Handle adds one SSR; any failure leaves the draft untouched
func (h *ServiceHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	q, err := ParseService(cmd.Args)
	if err != nil {
		return fail(err)
	}

	def, ok := entity.LookupService(q.Code)
	if !ok {
		return fail(errUnknownSSR)
	}

	request := entity.ServiceRequest{ServiceDefinition: def}
	if q.Passenger > 0 {
		if q.Passenger > len(s.draft.Passengers) {
			return fail(errPassengerAssoc)
		}
		idx := q.Passenger - 1
		request.PassengerIndex = &idx
	}
	if q.Segment > 0 {
		if q.Segment > len(s.draft.Segments) {
			return fail(errSegmentAssoc)
		}
		idx := q.Segment - 1
		request.SegmentIndex = &idx
	}

	s.draft.AddService(request)
	return lines(serviceLine(len(s.draft.Services), request))
}
