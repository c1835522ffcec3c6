package mocks

import (
	"context"
	"time"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockAdminService implements domain.AdminService interface for testing
type MockAdminService struct {
	CreateFunc        func(ctx context.Context, req domain.CreateAdminRequest) (*domain.Admin, error)
	EnsureCreatorFunc func(ctx context.Context, phone, password string) (*domain.Admin, error)
}

func NewMockAdminService() *MockAdminService {
	return &MockAdminService{}
}

func (m *MockAdminService) Create(ctx context.Context, req domain.CreateAdminRequest) (*domain.Admin, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Admin{ID: 1, Phone: req.Phone, Name: req.Name, Surname: req.Surname, IsCreator: req.IsCreator}, nil
}

func (m *MockAdminService) EnsureCreator(ctx context.Context, phone, password string) (*domain.Admin, error) {
	if m.EnsureCreatorFunc != nil {
		return m.EnsureCreatorFunc(ctx, phone, password)
	}
	return &domain.Admin{ID: 1, Phone: phone, IsCreator: true}, nil
}

var _ domain.AdminService = (*MockAdminService)(nil)

// MockBlockService implements domain.BlockService interface for testing
type MockBlockService struct {
	CreateFunc func(ctx context.Context, adminID, userID uint, reason string, expiresAt time.Time) (*domain.Block, error)
	ListFunc   func(ctx context.Context, identity *domain.Identity) ([]*domain.Block, error)
	GetFunc    func(ctx context.Context, id uint, identity *domain.Identity) (*domain.Block, error)
	UpdateFunc func(ctx context.Context, adminID, id uint, req domain.UpdateBlockRequest) (*domain.Block, error)
	RemoveFunc func(ctx context.Context, id uint) error
}

func NewMockBlockService() *MockBlockService {
	return &MockBlockService{}
}

func (m *MockBlockService) Create(ctx context.Context, adminID, userID uint, reason string, expiresAt time.Time) (*domain.Block, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, adminID, userID, reason, expiresAt)
	}
	return &domain.Block{ID: 1, AdminID: adminID, UserID: userID, Reason: reason, ExpiresAt: expiresAt}, nil
}

func (m *MockBlockService) List(ctx context.Context, identity *domain.Identity) ([]*domain.Block, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, identity)
	}
	return []*domain.Block{}, nil
}

func (m *MockBlockService) Get(ctx context.Context, id uint, identity *domain.Identity) (*domain.Block, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, identity)
	}
	return nil, domain.ErrBlockNotFound
}

func (m *MockBlockService) Update(ctx context.Context, adminID, id uint, req domain.UpdateBlockRequest) (*domain.Block, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, adminID, id, req)
	}
	return nil, domain.ErrBlockNotFound
}

func (m *MockBlockService) Remove(ctx context.Context, id uint) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	return nil
}

var _ domain.BlockService = (*MockBlockService)(nil)
