package mocks

import (
	"context"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByPhoneFunc func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.User, error)
	ActivateFunc    func(ctx context.Context, userID uint) error
	DeleteFunc      func(ctx context.Context, userID uint) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Activate marks the account active
func (m *MockUserRepository) Activate(ctx context.Context, userID uint) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, userID)
	}
	return nil
}

// Delete removes the account
func (m *MockUserRepository) Delete(ctx context.Context, userID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
