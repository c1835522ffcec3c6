package mocks

import (
	"context"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockAdminRepository implements domain.AdminRepository interface for testing
type MockAdminRepository struct {
	CreateFunc      func(ctx context.Context, admin *domain.Admin) error
	FindByPhoneFunc func(ctx context.Context, phone string) (*domain.Admin, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Admin, error)
}

func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{}
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

func (m *MockAdminRepository) FindByPhone(ctx context.Context, phone string) (*domain.Admin, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrAdminNotFound
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAdminNotFound
}

var _ domain.AdminRepository = (*MockAdminRepository)(nil)
