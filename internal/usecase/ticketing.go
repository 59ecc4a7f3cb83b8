package usecase

import (
	"context"
	"fmt"
	"strings"

	"airops-service/internal/domain/entity"
	"airops-service/pkg/utils"
)

// EMDPrefix is the airline accounting code printed on issued documents
const EMDPrefix = "657"

// TicketingHandler serves TMI/ (payment modification), TTM/ (EMD reissue) and TKOK
type TicketingHandler struct{}

// NewTicketingHandler creates a new ticketing handler
func NewTicketingHandler() *TicketingHandler {
	return &TicketingHandler{}
}

// Rules lists the verbs served
func (h *TicketingHandler) Rules() []Rule {
	return []Rule{
		{Verb: "TMI/", Help: "TMI/FP-O/... | TMI/FP-<FOP>         MODIFY SERVICE PAYMENT"},
		{Verb: "TTM/", Help: "TTM/...                             REISSUE EMDS"},
		{Verb: "TKOK", NoArgs: true, Help: "TKOK                                TICKETING ARRANGEMENT OK"},
	}
}

// Handle dispatches on verb
func (h *TicketingHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	d := s.draft

	switch cmd.Verb {
	case "TMI/":
		var (
			fop   string
			reuse bool
		)
		switch {
		case strings.HasPrefix(cmd.Args, "FP-O/") || cmd.Args == "FP-O":
			reuse = true
		case strings.HasPrefix(cmd.Args, "FP-"):
			fop = strings.TrimPrefix(cmd.Args, "FP-")
		default:
			return fail(ErrInvalidFormat)
		}

		current, err := d.ModifyPayment(fop, reuse)
		if err != nil {
			return fail(err)
		}
		if reuse {
			return lines("FP " + current + " - ORIGINAL FORM OF PAYMENT KEPT")
		}
		return lines("FP " + current + " - FORM OF PAYMENT UPDATED")

	case "TTM/":
		n, err := d.Reissue()
		if err != nil {
			return fail(err)
		}
		out := Output{}
		for _, service := range d.Services {
			if !service.Chargeable() {
				continue
			}
			out.Print(fmt.Sprintf("EMD %s %s %s %s", utils.NewDocumentNumber(EMDPrefix), service.Code, entity.Currency, service.Price))
		}
		out.Print(fmt.Sprintf("%d EMD REISSUED - FP %s", n, d.FormOfPayment))
		return out

	default:
		d.MarkTicketed()
		return lines("TK OK")
	}
}
