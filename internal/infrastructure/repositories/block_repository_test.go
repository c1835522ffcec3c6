package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

func TestBlockRepositoryImpl_HasActive(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name   string
		blocks []*domain.Block
		userID uint
		want   bool
	}{
		{
			name:   "no blocks",
			userID: 1,
			want:   false,
		},
		{
			name:   "active block",
			blocks: []*domain.Block{{UserID: 1, AdminID: 9, ExpiresAt: now.Add(time.Hour)}},
			userID: 1,
			want:   true,
		},
		{
			name:   "expired block only",
			blocks: []*domain.Block{{UserID: 1, AdminID: 9, ExpiresAt: now.Add(-time.Hour)}},
			userID: 1,
			want:   false,
		},
		{
			name:   "active block for someone else",
			blocks: []*domain.Block{{UserID: 2, AdminID: 9, ExpiresAt: now.Add(time.Hour)}},
			userID: 1,
			want:   false,
		},
		{
			name: "one expired one active",
			blocks: []*domain.Block{
				{UserID: 1, AdminID: 9, ExpiresAt: now.Add(-time.Hour)},
				{UserID: 1, AdminID: 9, ExpiresAt: now.Add(24 * time.Hour)},
			},
			userID: 1,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewBlockRepository(setupTestDB(t))
			ctx := context.Background()
			for _, b := range tt.blocks {
				require.NoError(t, repo.Create(ctx, b))
			}

			got, err := repo.HasActive(ctx, tt.userID, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlockRepositoryImpl_ListAndDelete(t *testing.T) {
	repo := NewBlockRepository(setupTestDB(t))
	ctx := context.Background()
	exp := time.Now().UTC().Add(time.Hour)

	a := &domain.Block{UserID: 1, AdminID: 10, Reason: "spam", ExpiresAt: exp}
	b := &domain.Block{UserID: 1, AdminID: 11, Reason: "fraud", ExpiresAt: exp}
	c := &domain.Block{UserID: 2, AdminID: 10, Reason: "spam", ExpiresAt: exp}
	for _, blk := range []*domain.Block{a, b, c} {
		require.NoError(t, repo.Create(ctx, blk))
	}

	forUser, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, forUser, 2)

	byAdmin, err := repo.ListByAdmin(ctx, 10)
	require.NoError(t, err)
	require.Len(t, byAdmin, 2)
	for _, blk := range byAdmin {
		assert.Equal(t, uint(10), blk.AdminID)
	}

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "fraud", got.Reason)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrBlockNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), domain.ErrBlockNotFound)
}

func TestBlockRepositoryImpl_Update(t *testing.T) {
	repo := NewBlockRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	blk := &domain.Block{UserID: 1, AdminID: 10, Reason: "spam", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, blk))

	blk.Reason = "fraud"
	blk.ExpiresAt = now.Add(-time.Minute)
	require.NoError(t, repo.Update(ctx, blk))

	got, err := repo.FindByID(ctx, blk.ID)
	require.NoError(t, err)
	assert.Equal(t, "fraud", got.Reason)
	assert.Equal(t, uint(10), got.AdminID)

	active, err := repo.HasActive(ctx, 1, now)
	require.NoError(t, err)
	assert.False(t, active)

	missing := &domain.Block{ID: blk.ID + 1, Reason: "x", ExpiresAt: now}
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrBlockNotFound)
}
