package mocks

import (
	"context"
	"sync"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// SentSMS is a message captured by MockNotificationService
type SentSMS struct {
	To      string
	Message string
}

// MockNotificationService implements domain.NotificationService interface for testing.
// Every successful send is recorded in Sent.
type MockNotificationService struct {
	SendSMSFunc func(ctx context.Context, to, message string) error

	mu   sync.Mutex
	Sent []SentSMS
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS message
func (m *MockNotificationService) SendSMS(ctx context.Context, to, message string) error {
	if m.SendSMSFunc != nil {
		if err := m.SendSMSFunc(ctx, to, message); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	m.mu.Unlock()
	return nil
}

// Last returns the most recent message, or the zero value when none was sent
func (m *MockNotificationService) Last() SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentSMS{}
	}
	return m.Sent[len(m.Sent)-1]
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
