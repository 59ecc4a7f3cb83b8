package mocks

import (
	"context"
	"sync"

	"airops-service/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockMailer is a mock implementation of repository.Mailer
type MockMailer struct {
	mock.Mock

	mu   sync.Mutex
	sent []entity.OutgoingEmail
}

func (m *MockMailer) Send(ctx context.Context, email entity.OutgoingEmail) entity.SendResult {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()

	args := m.Called(ctx, email)
	return args.Get(0).(entity.SendResult)
}

// Sent returns a copy of every email passed to Send
func (m *MockMailer) Sent() []entity.OutgoingEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.OutgoingEmail, len(m.sent))
	copy(out, m.sent)
	return out
}
