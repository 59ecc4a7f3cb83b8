package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/utils"
	"airops-service/templates"
)

var errNoConfirmation = errors.New("NO CONFIRMATION EMAIL ON FILE")

// EmailCommandHandler serves RESEND and TESTEMAIL
type EmailCommandHandler struct {
	reader     *BookingReader
	sentEmails repository.SentEmailRepository
	dispatcher *EmailDispatcher
	logger     logger.Logger
}

// NewEmailCommandHandler creates a new email command handler
func NewEmailCommandHandler(reader *BookingReader, sentEmails repository.SentEmailRepository, dispatcher *EmailDispatcher, logger logger.Logger) *EmailCommandHandler {
	return &EmailCommandHandler{
		reader:     reader,
		sentEmails: sentEmails,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Rules lists the verbs served
func (h *EmailCommandHandler) Rules() []Rule {
	return []Rule{
		{Verb: "RESEND", Help: "RESEND <PNR>                        RESEND CONFIRMATION"},
		{Verb: "TESTEMAIL", Help: "TESTEMAIL <EMAIL>                   SEND TEST MESSAGE"},
	}
}

// Handle dispatches on verb
func (h *EmailCommandHandler) Handle(ctx context.Context, s *Session, cmd Command) Output {
	if cmd.Verb == "TESTEMAIL" {
		return h.test(ctx, s, cmd.Args)
	}
	return h.resend(ctx, s, cmd.Args)
}

func (h *EmailCommandHandler) resend(ctx context.Context, s *Session, pnr string) Output {
	if pnr == "" || strings.ContainsAny(pnr, " /") {
		return fail(ErrInvalidFormat)
	}

	last, err := h.sentEmails.FindLastByPNR(ctx, pnr)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Error("Failed to look up sent email", "pnr", pnr, "error", err)
		}
		return fail(errNoConfirmation)
	}

	booking, _, err := h.reader.Get(ctx, pnr)
	if err != nil {
		return fail(ErrPNRNotFound)
	}

	to := last.To
	email := toOutgoing(to, confirmationFromBooking(booking))

	out := lines("CONFIRMATION RESEND QUEUED TO " + to)
	out.Defer(func() {
		h.dispatcher.Dispatch(context.WithoutCancel(ctx), EmailJob{Kind: entity.EmailBookingConfirmation, PNR: pnr, Email: email}, func(result entity.SendResult) {
			s.Append(emailResultLine(to, result))
		})
	})
	return out
}

func (h *EmailCommandHandler) test(ctx context.Context, s *Session, to string) Output {
	if !utils.IsValidEmail(to) {
		return fail(ErrInvalidFormat)
	}

	email := toOutgoing(to, templates.RenderTestMessage(time.Now()))

	out := lines("TEST EMAIL QUEUED TO " + to)
	out.Defer(func() {
		h.dispatcher.Dispatch(context.WithoutCancel(ctx), EmailJob{Kind: entity.EmailTest, Email: email}, func(result entity.SendResult) {
			s.Append(emailResultLine(to, result))
		})
	})
	return out
}
