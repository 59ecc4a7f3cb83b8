package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"airops-service/internal/domain/entity"
	"airops-service/pkg/utils"
)

var (
	errNameFormat = errors.New("CHECK NAME FORMAT - SURNAME/FIRSTNAME TITLE")
	errNameCount  = errors.New("NUMBER OF NAMES DOES NOT MATCH")

	namePrefix = regexp.MustCompile(`^(\d)\s*(.+)$`)
	nameWord   = regexp.MustCompile(`^[A-Z][A-Z' -]*$`)
	staffID    = regexp.MustCompile(`^[A-Z]?\d{3,10}$`)
)

var titles = map[string]bool{
	"MR": true, "MRS": true, "MS": true, "MISS": true, "MSTR": true, "DR": true, "CHD": true, "INF": true,
}

// DefaultTitle is used when a name element carries no title
const DefaultTitle = "MR"

// splitTitle separates a trailing title from a first name
func splitTitle(given string) (string, string) {
	fields := strings.Fields(given)
	if len(fields) >= 2 && titles[fields[len(fields)-1]] {
		return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
	}
	return strings.Join(fields, " "), DefaultTitle
}

// ParseNames parses the argument of NM: "1DOE/JOHN MR" or "2DOE/JOHN MR/JANE MRS"
func ParseNames(args string) ([]entity.PassengerName, error) {
	m := namePrefix.FindStringSubmatch(args)
	if m == nil {
		return nil, errNameFormat
	}
	count, _ := strconv.Atoi(m[1])

	parts := strings.Split(m[2], "/")
	surname := strings.TrimSpace(parts[0])
	if len(parts) < 2 || !nameWord.MatchString(surname) {
		return nil, errNameFormat
	}
	if count != len(parts)-1 {
		return nil, errNameCount
	}

	names := make([]entity.PassengerName, 0, count)
	for _, given := range parts[1:] {
		first, title := splitTitle(given)
		if first == "" || !nameWord.MatchString(first) {
			return nil, errNameFormat
		}
		names = append(names, entity.PassengerName{
			LastName:  surname,
			FirstName: first,
			Title:     title,
			Type:      entity.PassengerRevenue,
		})
	}
	return names, nil
}

// ParseStaffName parses SD/SSBY arguments: "1DOE/JOHN MR[/E123456]". A
// missing staff id is synthesised.
func ParseStaffName(args string, kind entity.PassengerType) (entity.PassengerName, error) {
	m := namePrefix.FindStringSubmatch(args)
	if m == nil || m[1] != "1" {
		return entity.PassengerName{}, errNameFormat
	}

	parts := strings.Split(m[2], "/")
	if len(parts) < 2 || len(parts) > 3 {
		return entity.PassengerName{}, errNameFormat
	}
	surname := strings.TrimSpace(parts[0])
	first, title := splitTitle(parts[1])
	if !nameWord.MatchString(surname) || first == "" || !nameWord.MatchString(first) {
		return entity.PassengerName{}, errNameFormat
	}

	id := utils.NewEmployeeID()
	if len(parts) == 3 {
		id = strings.TrimSpace(parts[2])
		if !staffID.MatchString(id) {
			return entity.PassengerName{}, errNameFormat
		}
	}

	return entity.PassengerName{
		LastName:  surname,
		FirstName: first,
		Title:     title,
		Type:      kind,
		StaffID:   id,
	}, nil
}

// ElementHandler serves name (NM, SD, SSBY) and contact (AP, APE-) entry
type ElementHandler struct{}

// NewElementHandler creates a new element handler
func NewElementHandler() *ElementHandler {
	return &ElementHandler{}
}

// Rules lists the verbs served
func (h *ElementHandler) Rules() []Rule {
	return []Rule{
		{Verb: "NM", Help: "NM1SURNAME/FIRST TITLE              NAME"},
		{Verb: "SD", Help: "SD1SURNAME/FIRST TITLE[/ID]         STAFF ON DUTY"},
		{Verb: "SSBY", Help: "SSBY1SURNAME/FIRST TITLE[/ID]       STAFF STANDBY"},
		{Verb: "AP", Help: "AP <CONTACT>                        CONTACT ELEMENT"},
		{Verb: "APE-", Help: "APE-<EMAIL>                         EMAIL CONTACT"},
	}
}

// Handle dispatches on verb
func (h *ElementHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	switch cmd.Verb {
	case "NM":
		names, err := ParseNames(cmd.Args)
		if err != nil {
			return fail(err)
		}
		out := Output{}
		for _, name := range names {
			s.draft.AddPassenger(name)
			out.Print(nameLine(len(s.draft.Passengers), name))
		}
		return out

	case "SD", "SSBY":
		kind := entity.PassengerStaffDuty
		if cmd.Verb == "SSBY" {
			kind = entity.PassengerStaffSBY
		}
		name, err := ParseStaffName(cmd.Args, kind)
		if err != nil {
			return fail(err)
		}
		s.draft.AddPassenger(name)
		return lines(nameLine(len(s.draft.Passengers), name))

	default:
		contact := cmd.Args
		if contact == "" {
			return fail(ErrInvalidFormat)
		}
		if cmd.Verb == "APE-" && !utils.IsValidEmail(contact) {
			return fail(ErrInvalidFormat)
		}
		s.draft.AddContact(contact)
		return lines(contactLine(len(s.draft.Contacts), contact))
	}
}
