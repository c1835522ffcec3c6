package mocks

import (
	"context"
	"time"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// MockBlockRepository implements domain.BlockRepository interface for testing
type MockBlockRepository struct {
	CreateFunc      func(ctx context.Context, block *domain.Block) error
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Block, error)
	ListByUserFunc  func(ctx context.Context, userID uint) ([]*domain.Block, error)
	ListByAdminFunc func(ctx context.Context, adminID uint) ([]*domain.Block, error)
	HasActiveFunc   func(ctx context.Context, userID uint, now time.Time) (bool, error)
	UpdateFunc      func(ctx context.Context, block *domain.Block) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

func NewMockBlockRepository() *MockBlockRepository {
	return &MockBlockRepository{}
}

func (m *MockBlockRepository) Create(ctx context.Context, block *domain.Block) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, block)
	}
	return nil
}

func (m *MockBlockRepository) FindByID(ctx context.Context, id uint) (*domain.Block, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrBlockNotFound
}

func (m *MockBlockRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Block, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBlockRepository) ListByAdmin(ctx context.Context, adminID uint) ([]*domain.Block, error) {
	if m.ListByAdminFunc != nil {
		return m.ListByAdminFunc(ctx, adminID)
	}
	return nil, nil
}

// HasActive defaults to "not blocked"
func (m *MockBlockRepository) HasActive(ctx context.Context, userID uint, now time.Time) (bool, error) {
	if m.HasActiveFunc != nil {
		return m.HasActiveFunc(ctx, userID, now)
	}
	return false, nil
}

func (m *MockBlockRepository) Update(ctx context.Context, block *domain.Block) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, block)
	}
	return nil
}

func (m *MockBlockRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

var _ domain.BlockRepository = (*MockBlockRepository)(nil)
