package mocks

import (
	"context"
	"time"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc     func(ctx context.Context, user *domain.User) (*domain.OTP, error)
	CheckFunc     func(ctx context.Context, uuid, code string) (*domain.OTP, error)
	ConsumeFunc   func(ctx context.Context, otp *domain.OTP) error
	RevokeFunc    func(ctx context.Context, userID uint) error
	CanResendFunc func(ctx context.Context, phone string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue returns a fixed code for the user
func (m *MockOTPService) Issue(ctx context.Context, user *domain.User) (*domain.OTP, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user)
	}
	return &domain.OTP{
		ID:        1,
		UserID:    user.ID,
		Code:      "123456",
		UUID:      "00000000-0000-0000-0000-000000000001",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

func (m *MockOTPService) Check(ctx context.Context, uuid, code string) (*domain.OTP, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, uuid, code)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockOTPService) Consume(ctx context.Context, otp *domain.OTP) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, otp)
	}
	return nil
}

func (m *MockOTPService) Revoke(ctx context.Context, userID uint) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, userID)
	}
	return nil
}

// CanResend defaults to allowed
func (m *MockOTPService) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, phone)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
