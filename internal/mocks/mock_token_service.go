package mocks

import (
	"fmt"
	"time"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc  func(actor domain.ActorKind, claims domain.Claims) (*domain.TokenPair, error)
	VerifyFunc func(token string, actor domain.ActorKind, kind domain.TokenKind) (*domain.Claims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue returns a predictable pair such as "access_user_1" / "refresh_user_1"
func (m *MockTokenService) Issue(actor domain.ActorKind, claims domain.Claims) (*domain.TokenPair, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(actor, claims)
	}
	now := time.Now()
	return &domain.TokenPair{
		AccessToken:      fmt.Sprintf("access_%s_%d", actor, claims.ID),
		RefreshToken:     fmt.Sprintf("refresh_%s_%d", actor, claims.ID),
		AccessExpiresAt:  now.Add(15 * time.Minute),
		RefreshExpiresAt: now.Add(240 * time.Hour),
	}, nil
}

// Verify rejects everything unless VerifyFunc is set
func (m *MockTokenService) Verify(token string, actor domain.ActorKind, kind domain.TokenKind) (*domain.Claims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, actor, kind)
	}
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
