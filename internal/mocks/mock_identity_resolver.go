package mocks

import (
	"context"
	"sync"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockIdentityResolver implements domain.IdentityResolver interface for testing.
// Tokens listed in Identities resolve; anything else is unauthenticated.
type MockIdentityResolver struct {
	ResolveFunc func(token string) (*domain.Identity, error)
	Identities  map[string]*domain.Identity
}

func NewMockIdentityResolver() *MockIdentityResolver {
	return &MockIdentityResolver{Identities: map[string]*domain.Identity{}}
}

func (m *MockIdentityResolver) Resolve(token string) (*domain.Identity, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(token)
	}
	if id, ok := m.Identities[token]; ok {
		return id, nil
	}
	return nil, domain.ErrUnauthenticated
}

var _ domain.IdentityResolver = (*MockIdentityResolver)(nil)

// RecordingAuditLogger keeps every audit event in memory
type RecordingAuditLogger struct {
	mu     sync.Mutex
	Events []*domain.AuditEvent
}

func (r *RecordingAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

// Types returns the recorded event types in order
func (r *RecordingAuditLogger) Types() []domain.AuditEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]domain.AuditEventType, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.EventType
	}
	return types
}

var _ domain.AuditLogger = (*RecordingAuditLogger)(nil)
