package repository

import (
	"context"

	"airops-service/internal/domain/entity"
)

// SentEmailRepository records successfully delivered emails
type SentEmailRepository interface {
	Save(ctx context.Context, email *entity.SentEmail) error
	FindLastByPNR(ctx context.Context, pnr string) (*entity.SentEmail, error)
	List(ctx context.Context, limit int) ([]entity.SentEmail, error)
}
