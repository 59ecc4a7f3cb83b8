package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/utils"

	"github.com/mailgun/mailgun-go/v4"
)

// MailgunRepository sends emails through the Mailgun messages API
type MailgunRepository struct {
	logger logger.Logger
	client *mailgun.MailgunImpl
	apiKey string
	from   string
}

// NewMailgunRepository creates a new Mailgun transport. baseURL is the API
// host without the version segment, e.g. https://api.mailgun.net.
func NewMailgunRepository(apiKey, domain, baseURL, from string, timeout time.Duration, logger logger.Logger) repository.Mailer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := mailgun.NewMailgun(domain, apiKey)
	client.SetAPIBase(strings.TrimRight(baseURL, "/") + "/v3")
	client.SetClient(&http.Client{Timeout: timeout})

	return &MailgunRepository{
		logger: logger,
		client: client,
		apiKey: apiKey,
		from:   from,
	}
}

// Send posts one message. Failures are reported in the result, never returned.
func (r *MailgunRepository) Send(ctx context.Context, email entity.OutgoingEmail) entity.SendResult {
	if r.apiKey == "" {
		r.logger.Warn("Mailgun API key not configured, email not sent", "to", email.To)
		return entity.SendResult{Reason: entity.ReasonMissingConfig, Error: "MAILGUN_API_KEY is not configured"}
	}
	if !utils.IsValidEmail(email.To) {
		return entity.SendResult{Reason: entity.ReasonInvalid, Error: "recipient is not a valid address"}
	}
	if utils.HasLineBreak(email.Subject) {
		return entity.SendResult{Reason: entity.ReasonInvalid, Error: "subject contains a line break"}
	}

	message := r.client.NewMessage(r.from, email.Subject, email.Text, email.To)
	if email.HTML != "" {
		message.SetHtml(email.HTML)
	}

	response, id, err := r.client.Send(ctx, message)
	if err != nil {
		return r.failure(email, err)
	}

	// a 2xx without an id or message was not accepted by Mailgun
	messageID := id
	if messageID == "" {
		messageID = response
	}
	if messageID == "" {
		r.logger.Error("Mailgun response carried no message id", "to", email.To)
		return entity.SendResult{Reason: entity.ReasonInvalid, Error: "mailgun response carried no message id"}
	}

	r.logger.Info("Email sent via Mailgun",
		"to", email.To,
		"subject", email.Subject,
		"messageId", messageID)

	return entity.SendResult{Success: true, MessageID: messageID}
}

func (r *MailgunRepository) failure(email entity.OutgoingEmail, err error) entity.SendResult {
	var unexpected *mailgun.UnexpectedResponseError
	if errors.As(err, &unexpected) {
		msg := providerMessage(unexpected.Data)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", unexpected.Actual)
		}
		r.logger.Error("Mailgun rejected message",
			"to", email.To,
			"status", unexpected.Actual,
			"message", msg)
		return entity.SendResult{Reason: entity.ReasonHTTPStatus, Error: msg}
	}

	r.logger.Error("Mailgun request failed", "to", email.To, "error", err)
	return entity.SendResult{Reason: entity.ReasonNetwork, Error: err.Error()}
}

// providerMessage extracts Mailgun's {"message": ...} error text
func providerMessage(body []byte) string {
	var response struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return ""
	}
	return response.Message
}
