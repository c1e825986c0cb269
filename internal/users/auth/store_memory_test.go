// Copyright (c) 2026 NotesAI. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/sec"
	"github.com/cevheri/noteai/internal/users/auth"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := auth.NewMemoryUserRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		require.NoError(t, repo.Create(ctx, &auth.User{
			ID:        fmt.Sprintf("u%d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Name:      fmt.Sprintf("User %d", i),
			Role:      sec.RoleUser,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	t.Run("email lookup folds case", func(t *testing.T) {
		user, err := repo.FindByEmail(ctx, "USER3@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "u3", user.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &auth.User{ID: "dup", Email: "User1@example.com"})
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	t.Run("returned copies are detached", func(t *testing.T) {
		user, err := repo.FindByID(ctx, "u0")
		require.NoError(t, err)
		user.Name = "mutated"

		again, err := repo.FindByID(ctx, "u0")
		require.NoError(t, err)
		assert.Equal(t, "User 0", again.Name)
	})

	t.Run("list newest first with window", func(t *testing.T) {
		users, total, err := repo.List(ctx, auth.UserQuery{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, users, 2)
		assert.Equal(t, "u3", users[0].ID)
		assert.Equal(t, "u2", users[1].ID)
	})

	t.Run("list search", func(t *testing.T) {
		users, total, err := repo.List(ctx, auth.UserQuery{Search: "user4", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "u4", users[0].ID)
	})

	t.Run("count created since", func(t *testing.T) {
		count, err := repo.CountCreatedSince(ctx, base.Add(3*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "u4")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "u4")
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.FindByEmail(ctx, "user4@example.com")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := auth.NewMemorySessionRepository()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	sessions := []*auth.Session{
		{ID: "s1", UserID: "a", ExpiresAt: now.Add(time.Hour)},
		{ID: "s2", UserID: "a", ExpiresAt: now.Add(2 * time.Hour)},
		{ID: "s3", UserID: "b", ExpiresAt: now.Add(time.Hour)},
		{ID: "s4", UserID: "c", ExpiresAt: now},
	}
	for _, session := range sessions {
		require.NoError(t, repo.Create(ctx, session))
	}

	active, err := repo.CountActiveUsers(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, active)

	require.NoError(t, repo.DeleteByUser(ctx, "a"))
	_, err = repo.FindByID(ctx, "s2")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	active, err = repo.CountActiveUsers(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, active)

	assert.NoError(t, repo.Delete(ctx, "missing"))
}
