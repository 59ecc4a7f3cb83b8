package repository

import (
	"context"

	"airops-service/internal/domain/entity"
)

// Mailer delivers a rendered email. Implementations never fail past their
// boundary: every outcome is reported in the SendResult.
type Mailer interface {
	Send(ctx context.Context, email entity.OutgoingEmail) entity.SendResult
}
