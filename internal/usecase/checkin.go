package usecase

import (
	"context"
	"fmt"
	"strings"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/utils"
	"airops-service/templates"
)

// CheckInResult is the outcome of a check-in
type CheckInResult struct {
	Booking *Booking           `json:"booking"`
	Email   *entity.SendResult `json:"email,omitempty"`
}

// CheckInService checks in committed bookings
type CheckInService struct {
	passengers repository.PassengerRepository
	reader     *BookingReader
	dispatcher *EmailDispatcher
	oplog      opLog
	logger     logger.Logger
}

// NewCheckInService creates a new check-in service
func NewCheckInService(passengers repository.PassengerRepository, reader *BookingReader, dispatcher *EmailDispatcher, logs repository.LogRepository, logger logger.Logger) *CheckInService {
	return &CheckInService{
		passengers: passengers,
		reader:     reader,
		dispatcher: dispatcher,
		oplog:      newOpLog(logs, entity.SourceTerminal, logger),
		logger:     logger,
	}
}

// CheckIn marks every row of the booking as checked with the given bag
// count and, when an address is given, sends the check-in notice.
func (s *CheckInService) CheckIn(ctx context.Context, pnr string, bags int, email string) (*CheckInResult, error) {
	if bags < 0 {
		return nil, fmt.Errorf("%w: bag count cannot be negative", ErrValidation)
	}
	email = strings.TrimSpace(email)
	if email != "" && !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid notice email", ErrValidation)
	}
	pnr = strings.ToUpper(strings.TrimSpace(pnr))

	_, rows, err := s.reader.Get(ctx, pnr)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := s.passengers.UpdateBagStatus(ctx, row.ID, bags, entity.BagStatusChecked); err != nil {
			return nil, fmt.Errorf("failed to check in %s: %w", row.ID, err)
		}
	}
	s.oplog.info(ctx, forPNR(pnr), "BOOKING %s CHECKED IN WITH %d BAGS", pnr, bags)

	booking, _, err := s.reader.Get(ctx, pnr)
	if err != nil {
		return nil, err
	}
	result := &CheckInResult{Booking: booking}

	if email == "" {
		return result, nil
	}

	names := make([]string, 0, len(booking.Passengers))
	for _, p := range booking.Passengers {
		names = append(names, p.Name.Display())
	}
	rendered := templates.RenderCheckInNotice(templates.CheckInNotice{
		PNR:        pnr,
		Passengers: names,
		Legs:       legsOf(booking.Segments),
		Bags:       bags,
	})

	sent, err := s.dispatcher.Dispatch(ctx, EmailJob{Kind: entity.EmailCheckIn, PNR: pnr, Email: toOutgoing(email, rendered)}, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	result.Email = &sent
	return result, nil
}
