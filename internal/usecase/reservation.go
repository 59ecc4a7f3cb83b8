package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/metrics"
	"airops-service/pkg/utils"

	"github.com/google/uuid"
)

const pnrAttempts = 10

var errNoLocator = errors.New("UNABLE TO ASSIGN RECORD LOCATOR")

// ReservationHandler serves commit (ER, ET), redisplay (RP, RT) and retrieve (RT<PNR>)
type ReservationHandler struct {
	passengers repository.PassengerRepository
	reader     *BookingReader
	dispatcher *EmailDispatcher
	oplog      opLog
	metrics    *metrics.Metrics
	logger     logger.Logger
	bagDelay   time.Duration
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(
	passengers repository.PassengerRepository,
	reader *BookingReader,
	dispatcher *EmailDispatcher,
	logs repository.LogRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	bagDelay time.Duration,
) *ReservationHandler {
	return &ReservationHandler{
		passengers: passengers,
		reader:     reader,
		dispatcher: dispatcher,
		oplog:      newOpLog(logs, entity.SourceTerminal, logger),
		metrics:    metrics,
		logger:     logger,
		bagDelay:   bagDelay,
	}
}

// Rules lists the verbs served
func (h *ReservationHandler) Rules() []Rule {
	return []Rule{
		{Verb: "ER", NoArgs: true, Help: "ER                                  END AND REDISPLAY"},
		{Verb: "ET", NoArgs: true, Help: "ET                                  END TRANSACTION"},
		{Verb: "RP", NoArgs: true, Help: "RP                                  DISPLAY CURRENT PNR"},
		{Verb: "RT", Help: "RT[<PNR>]                           RETRIEVE PNR"},
	}
}

// Handle dispatches on verb
func (h *ReservationHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	switch cmd.Verb {
	case "ER", "ET":
		return h.commit(ctx, s, cmd.Verb == "ER")
	case "RP":
		return lines(draftLines("RP/WORK IN PROGRESS", s.draft)...)
	}

	if cmd.Args == "" {
		return lines(draftLines("RP/WORK IN PROGRESS", s.draft)...)
	}
	return h.retrieve(ctx, cmd.Args)
}

func (h *ReservationHandler) retrieve(ctx context.Context, pnr string) Output {
	booking, _, err := h.reader.Get(ctx, pnr)
	if err != nil {
		if !errors.Is(err, ErrPNRNotFound) {
			h.logger.Error("Failed to retrieve booking", "pnr", pnr, "error", err)
		}
		return fail(ErrPNRNotFound)
	}
	return lines(booking.Lines()...)
}

// newLocator generates a record locator not yet present in the store
func (h *ReservationHandler) newLocator(ctx context.Context) (string, error) {
	for i := 0; i < pnrAttempts; i++ {
		pnr := utils.NewRecordLocator()
		exists, err := h.passengers.ExistsPNR(ctx, pnr)
		if err != nil {
			return "", err
		}
		if !exists {
			return pnr, nil
		}
	}
	return "", errNoLocator
}

// bagsFor is 1 checked bag plus one per bag-adding service addressed to the
// passenger or to everyone
func bagsFor(d entity.Draft, passenger int) int {
	bags := 1
	for _, service := range d.Services {
		if service.AddsBag && service.AppliesToPassenger(passenger) {
			bags++
		}
	}
	return bags
}

func (h *ReservationHandler) commit(ctx context.Context, s *Session, redisplay bool) Output {
	if err := s.draft.Complete(); err != nil {
		return fail(err)
	}

	pnr, err := h.newLocator(ctx)
	if err != nil {
		h.logger.Error("Failed to assign record locator", "error", err)
		h.metrics.Error("commit")
		return fail(errNoLocator)
	}

	draft := *s.draft
	rows := make([]entity.Passenger, 0, len(draft.Passengers)*len(draft.Segments))
	bags := make(map[string]int)
	now := time.Now()

	for i, name := range draft.Passengers {
		for _, seg := range draft.Segments {
			row := entity.Passenger{
				ID:        uuid.NewString(),
				PNR:       pnr,
				FirstName: name.FirstName,
				LastName:  name.LastName,
				Title:     name.Title,
				Type:      name.Type,
				StaffID:   name.StaffID,
				FlightID:  seg.Flight.ID,
				Class:     seg.Class,
				BagStatus: entity.BagStatusNone,
				CreatedAt: now,
			}
			rows = append(rows, row)
			bags[row.ID] = bagsFor(draft, i)
		}
	}

	if err := h.passengers.CreateBookings(ctx, rows); err != nil {
		h.logger.Error("Failed to create bookings", "pnr", pnr, "error", err)
		h.metrics.Error("commit")
		return fail(errors.New("BOOKING NOT STORED - RETRY"))
	}

	snapshot, _ := s.draft.Commit()
	h.metrics.BookingCommitted()
	h.oplog.info(ctx, forPNR(pnr), "BOOKING %s CREATED: %d PASSENGERS %d SEGMENTS", pnr, len(snapshot.Passengers), len(snapshot.Segments))
	h.logger.Info("Booking committed", "pnr", pnr, "rows", len(rows))

	out := Output{}
	if redisplay {
		out.Print(draftLines("RP/"+pnr, &snapshot)...)
	}
	out.Print(fmt.Sprintf("END OF TRANSACTION COMPLETE - %s", pnr))

	detached := context.WithoutCancel(ctx)
	out.Defer(func() {
		h.dispatcher.After(detached, h.bagDelay, func(ctx context.Context) { h.enrichBags(ctx, pnr, bags) })
	})

	for _, to := range snapshot.Emails() {
		to := to
		out.Print("CONFIRMATION EMAIL QUEUED TO " + to)
		email := toOutgoing(to, confirmationFromDraft(pnr, snapshot))
		out.Defer(func() {
			h.dispatcher.Dispatch(detached, EmailJob{Kind: entity.EmailBookingConfirmation, PNR: pnr, Email: email}, func(result entity.SendResult) {
				s.Append(emailResultLine(to, result))
			})
		})
	}
	return out
}

func (h *ReservationHandler) enrichBags(ctx context.Context, pnr string, bags map[string]int) {
	for id, count := range bags {
		if err := h.passengers.UpdateBagCount(ctx, id, count); err != nil {
			h.logger.Error("Failed to update bag count", "pnr", pnr, "passengerID", id, "error", err)
		}
	}
	h.logger.Debug("Bag counts updated", "pnr", pnr, "rows", len(bags))
}

func emailResultLine(to string, result entity.SendResult) string {
	if result.Success {
		return fmt.Sprintf("EMAIL SENT TO %s - %s", to, result.MessageID)
	}
	return fmt.Sprintf("EMAIL FAILED TO %s - %s %s", to, result.Reason, result.Error)
}
