package mocks

import (
	"context"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc        func(ctx context.Context, req domain.RegisterRequest) (*domain.Registration, error)
	SendOTPFunc         func(ctx context.Context, phone string) (*domain.Registration, error)
	VerifyOTPFunc       func(ctx context.Context, phone, code, uuid string) (*domain.AuthResult, error)
	LoginFunc           func(ctx context.Context, phone, password string) (*domain.AuthResult, error)
	RefreshFunc         func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	AdminLoginFunc      func(ctx context.Context, phone, password string) (*domain.AuthResult, error)
	AdminRefreshFunc    func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	GetUserProfileFunc  func(ctx context.Context, userID uint) (*domain.User, error)
	GetAdminProfileFunc func(ctx context.Context, adminID uint) (*domain.Admin, error)
}

// NewMockAuthService creates a new MockAuthService. Unset operations fail
// with domain.ErrUnauthenticated.
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Registration, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthService) SendOTP(ctx context.Context, phone string) (*domain.Registration, error) {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phone)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, phone, code, uuid string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, phone, code, uuid)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthService) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, phone, password)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthService) AdminLogin(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, phone, password)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthService) AdminRefresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.AdminRefreshFunc != nil {
		return m.AdminRefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) GetAdminProfile(ctx context.Context, adminID uint) (*domain.Admin, error) {
	if m.GetAdminProfileFunc != nil {
		return m.GetAdminProfileFunc(ctx, adminID)
	}
	return nil, domain.ErrAdminNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
