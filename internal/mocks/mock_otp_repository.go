package mocks

import (
	"context"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	CreateFunc         func(ctx context.Context, otp *domain.OTP) error
	FindByUUIDFunc     func(ctx context.Context, uuid string) (*domain.OTP, error)
	FindByUserIDFunc   func(ctx context.Context, userID uint) (*domain.OTP, error)
	DeleteFunc         func(ctx context.Context, id uint) error
	DeleteByUserIDFunc func(ctx context.Context, userID uint) error
}

func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Create(ctx context.Context, otp *domain.OTP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	return nil
}

func (m *MockOTPRepository) FindByUUID(ctx context.Context, uuid string) (*domain.OTP, error) {
	if m.FindByUUIDFunc != nil {
		return m.FindByUUIDFunc(ctx, uuid)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockOTPRepository) FindByUserID(ctx context.Context, userID uint) (*domain.OTP, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockOTPRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

var _ domain.OTPRepository = (*MockOTPRepository)(nil)
