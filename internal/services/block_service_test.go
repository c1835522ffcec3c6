package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/mocks"
)

func TestBlockServiceImpl_Create(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		userID        uint
		expiresAt     time.Time
		expectedError error
	}{
		{name: "future expiry", userID: 1, expiresAt: now.Add(24 * time.Hour)},
		{name: "expiry now", userID: 1, expiresAt: now, expectedError: domain.ErrInvalidBlock},
		{name: "expiry in the past", userID: 1, expiresAt: now.Add(-time.Minute), expectedError: domain.ErrInvalidBlock},
		{name: "unknown user", userID: 99, expiresAt: now.Add(time.Hour), expectedError: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mocks.NewMockUserRepository()
			users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
				if id == 1 {
					return createActiveUser(t), nil
				}
				return nil, domain.ErrUserNotFound
			}
			blocks := mocks.NewMockBlockRepository()
			audit := &mocks.RecordingAuditLogger{}
			svc := NewBlockService(blocks, users, audit)
			svc.now = func() time.Time { return now }

			block, err := svc.Create(createTestContext(t), 5, tt.userID, "fraud", tt.expiresAt)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, audit.Events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(5), block.AdminID)
			assert.Equal(t, tt.userID, block.UserID)
			assert.Equal(t, []domain.AuditEventType{domain.BlockCreatedEvent}, audit.Types())
		})
	}
}

func TestBlockServiceImpl_ListAndRemove(t *testing.T) {
	env := newTestEnv(t, AuthConfig{})
	svc := NewBlockService(env.blocks, env.users, env.audit)
	ctx := createTestContext(t)

	victim := &domain.User{Phone: "901234567", PasswordHash: "x", IsActive: true}
	other := &domain.User{Phone: "911234567", PasswordHash: "x", IsActive: true}
	require.NoError(t, env.users.Create(ctx, victim))
	require.NoError(t, env.users.Create(ctx, other))

	first, err := svc.Create(ctx, 1, victim.ID, "spam", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, other.ID, "fraud", time.Now().Add(time.Hour))
	require.NoError(t, err)

	mine, err := svc.List(ctx, &domain.Identity{ID: victim.ID, Actor: domain.ActorUser})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "spam", mine[0].Reason)

	issued, err := svc.List(ctx, &domain.Identity{ID: 2, Actor: domain.ActorAdmin})
	require.NoError(t, err)
	require.Len(t, issued, 1)
	assert.Equal(t, other.ID, issued[0].UserID)

	_, err = svc.List(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	require.NoError(t, svc.Remove(ctx, first.ID))
	assert.ErrorIs(t, svc.Remove(ctx, first.ID), domain.ErrBlockNotFound)

	blocked, err := env.blocks.HasActive(ctx, victim.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlockServiceImpl_GetAndUpdate(t *testing.T) {
	env := newTestEnv(t, AuthConfig{})
	svc := NewBlockService(env.blocks, env.users, env.audit)
	ctx := createTestContext(t)

	victim := &domain.User{Phone: "901234567", PasswordHash: "x", IsActive: true}
	other := &domain.User{Phone: "911234567", PasswordHash: "x", IsActive: true}
	require.NoError(t, env.users.Create(ctx, victim))
	require.NoError(t, env.users.Create(ctx, other))

	block, err := svc.Create(ctx, 1, victim.ID, "spam", time.Now().Add(time.Hour))
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		tests := []struct {
			name          string
			identity      *domain.Identity
			id            uint
			expectedError error
		}{
			{name: "owner", identity: &domain.Identity{ID: victim.ID, Actor: domain.ActorUser}, id: block.ID},
			{name: "any admin", identity: &domain.Identity{ID: 7, Actor: domain.ActorAdmin}, id: block.ID},
			{name: "another user", identity: &domain.Identity{ID: other.ID, Actor: domain.ActorUser}, id: block.ID, expectedError: domain.ErrBlockNotFound},
			{name: "missing block", identity: &domain.Identity{ID: 7, Actor: domain.ActorAdmin}, id: block.ID + 100, expectedError: domain.ErrBlockNotFound},
			{name: "no identity", id: block.ID, expectedError: domain.ErrUnauthenticated},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := svc.Get(ctx, tt.id, tt.identity)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, block.ID, got.ID)
			})
		}
	})

	t.Run("update reason keeps the expiry", func(t *testing.T) {
		reason := "repeat spam"
		got, err := svc.Update(ctx, 2, block.ID, domain.UpdateBlockRequest{Reason: &reason})
		require.NoError(t, err)
		assert.Equal(t, reason, got.Reason)

		stored, err := env.blocks.FindByID(ctx, block.ID)
		require.NoError(t, err)
		assert.Equal(t, reason, stored.Reason)
		assert.WithinDuration(t, block.ExpiresAt, stored.ExpiresAt, time.Second)
	})

	t.Run("expiry in the past ends the block", func(t *testing.T) {
		blocked, err := env.blocks.HasActive(ctx, victim.ID, time.Now())
		require.NoError(t, err)
		require.True(t, blocked)

		ended := time.Now().Add(-time.Minute)
		_, err = svc.Update(ctx, 2, block.ID, domain.UpdateBlockRequest{ExpiresAt: &ended})
		require.NoError(t, err)

		blocked, err = env.blocks.HasActive(ctx, victim.ID, time.Now())
		require.NoError(t, err)
		assert.False(t, blocked)

		_, err = env.blocks.FindByID(ctx, block.ID)
		assert.NoError(t, err, "the record is kept")
	})

	t.Run("empty update writes nothing", func(t *testing.T) {
		before := len(env.audit.Events)
		_, err := svc.Update(ctx, 2, block.ID, domain.UpdateBlockRequest{})
		require.NoError(t, err)
		assert.Len(t, env.audit.Events, before)
	})

	t.Run("missing block", func(t *testing.T) {
		reason := "x"
		_, err := svc.Update(ctx, 2, block.ID+100, domain.UpdateBlockRequest{Reason: &reason})
		assert.ErrorIs(t, err, domain.ErrBlockNotFound)
	})

	types := env.audit.Types()
	assert.Contains(t, types, domain.BlockUpdatedEvent)
}
