package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/utils"

	"github.com/wneessen/go-mail"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GmailSender delivers emails through the Gmail API users.messages.send call
type GmailSender struct {
	gmailService *gmail.Service
	from         string
	logger       logger.Logger
}

// NewGmailSender creates a new Gmail transport
func NewGmailSender(ctx context.Context, tokenSource oauth2.TokenSource, from string, logger logger.Logger, opts ...option.ClientOption) (repository.Mailer, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(tokenSource)}, opts...)
	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailSender{
		gmailService: service,
		from:         from,
		logger:       logger,
	}, nil
}

// Send sends one message as the authorised user
func (s *GmailSender) Send(ctx context.Context, email entity.OutgoingEmail) entity.SendResult {
	if !utils.IsValidEmail(email.To) {
		return entity.SendResult{Reason: entity.ReasonInvalid, Error: "recipient is not a valid address"}
	}

	raw, err := composeMessage(s.from, email)
	if err != nil {
		return entity.SendResult{Reason: entity.ReasonInvalid, Error: err.Error()}
	}
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}

	sent, err := s.gmailService.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			reason := apiErr.Message
			if reason == "" {
				reason = fmt.Sprintf("HTTP %d", apiErr.Code)
			}
			s.logger.Error("Gmail rejected message", "to", email.To, "status", apiErr.Code, "message", reason)
			if apiErr.Code == http.StatusUnauthorized {
				return entity.SendResult{Reason: entity.ReasonMissingConfig, Error: reason}
			}
			return entity.SendResult{Reason: entity.ReasonHTTPStatus, Error: reason}
		}
		s.logger.Error("Gmail request failed", "to", email.To, "error", err)
		return entity.SendResult{Reason: entity.ReasonNetwork, Error: err.Error()}
	}

	s.logger.Info("Email sent via Gmail", "to", email.To, "subject", email.Subject, "messageId", sent.Id)
	return entity.SendResult{Success: true, MessageID: sent.Id}
}

// composeMessage renders an RFC 5322 message; multipart/alternative when
// HTML is present. Addresses are validated while the headers are set.
func composeMessage(from string, email entity.OutgoingEmail) ([]byte, error) {
	if utils.HasLineBreak(email.Subject) {
		return nil, errors.New("subject contains a line break")
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	if email.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render message: %w", err)
	}
	return buf.Bytes(), nil
}
