// Copyright (c) 2026 NotesAI. All rights reserved.

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("short", "notesai.app")
	assert.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens, err := sec.NewTokenService(testSecret, "notesai.app")
	require.NoError(t, err)
	tokens.WithClock(func() time.Time { return now })

	token, err := tokens.Issue("sess-1", "user-1", now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID())
	assert.Equal(t, "user-1", claims.UserID())
}

func TestTokenService_Rejects(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens, err := sec.NewTokenService(testSecret, "notesai.app")
	require.NoError(t, err)
	tokens.WithClock(func() time.Time { return now })

	valid, err := tokens.Issue("sess-1", "user-1", now.Add(time.Hour))
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		expired, err := tokens.Issue("sess-2", "user-1", now.Add(-time.Minute))
		require.NoError(t, err)
		_, err = tokens.Parse(expired)
		assert.Error(t, err)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := sec.NewTokenService(strings.Repeat("x", 32), "notesai.app")
		require.NoError(t, err)
		_, err = other.WithClock(func() time.Time { return now }).Parse(valid)
		assert.Error(t, err)
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := sec.NewTokenService(testSecret, "elsewhere")
		require.NoError(t, err)
		_, err = other.WithClock(func() time.Time { return now }).Parse(valid)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.Error(t, err)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))
}
