package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// BlockServiceImpl implements domain.BlockService
type BlockServiceImpl struct {
	blockRepo domain.BlockRepository
	userRepo  domain.UserRepository
	audit     domain.AuditLogger
	now       func() time.Time
}

// NewBlockService creates a new block service
func NewBlockService(blockRepo domain.BlockRepository, userRepo domain.UserRepository, audit domain.AuditLogger) *BlockServiceImpl {
	return &BlockServiceImpl{blockRepo: blockRepo, userRepo: userRepo, audit: audit, now: time.Now}
}

// Create implements domain.BlockService
func (s *BlockServiceImpl) Create(ctx context.Context, adminID, userID uint, reason string, expiresAt time.Time) (*domain.Block, error) {
	if !expiresAt.After(s.now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", domain.ErrInvalidBlock)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	block := &domain.Block{UserID: userID, AdminID: adminID, Reason: reason, ExpiresAt: expiresAt}
	if err := s.blockRepo.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create block: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.BlockCreatedEvent, domain.ActorAdmin, adminID).
		WithMetadata("user_id", userID).
		WithMetadata("expires_at", expiresAt))
	return block, nil
}

// List implements domain.BlockService. Users see blocks against them,
// admins see the blocks they issued.
func (s *BlockServiceImpl) List(ctx context.Context, identity *domain.Identity) ([]*domain.Block, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	switch identity.Actor {
	case domain.ActorUser:
		return s.blockRepo.ListByUser(ctx, identity.ID)
	case domain.ActorAdmin:
		return s.blockRepo.ListByAdmin(ctx, identity.ID)
	}
	return nil, domain.ErrForbidden
}

// Get implements domain.BlockService. A user asking for someone else's block
// gets ErrBlockNotFound.
func (s *BlockServiceImpl) Get(ctx context.Context, id uint, identity *domain.Identity) (*domain.Block, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	block, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	switch identity.Actor {
	case domain.ActorAdmin:
		return block, nil
	case domain.ActorUser:
		if block.UserID == identity.ID {
			return block, nil
		}
		return nil, domain.ErrBlockNotFound
	}
	return nil, domain.ErrForbidden
}

// Update implements domain.BlockService
func (s *BlockServiceImpl) Update(ctx context.Context, adminID, id uint, req domain.UpdateBlockRequest) (*domain.Block, error) {
	block, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Reason == nil && req.ExpiresAt == nil {
		return block, nil
	}

	event := domain.NewAuditEvent(domain.BlockUpdatedEvent, domain.ActorAdmin, adminID).
		WithMetadata("block_id", id).
		WithMetadata("user_id", block.UserID)
	if req.Reason != nil {
		block.Reason = *req.Reason
	}
	if req.ExpiresAt != nil {
		block.ExpiresAt = *req.ExpiresAt
		event.WithMetadata("expires_at", block.ExpiresAt)
	}

	if err := s.blockRepo.Update(ctx, block); err != nil {
		if errors.Is(err, domain.ErrBlockNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update block: %w", err)
	}
	s.audit.LogEvent(ctx, event)
	return block, nil
}

func (s *BlockServiceImpl) find(ctx context.Context, id uint) (*domain.Block, error) {
	block, err := s.blockRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBlockNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load block: %w", err)
	}
	return block, nil
}

// Remove implements domain.BlockService
func (s *BlockServiceImpl) Remove(ctx context.Context, id uint) error {
	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrBlockNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove block: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.BlockRemovedEvent, domain.ActorAdmin, 0).WithMetadata("block_id", id))
	return nil
}

var _ domain.BlockService = (*BlockServiceImpl)(nil)
