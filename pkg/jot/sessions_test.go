package jot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jotpad/jot/pkg/models"
)

func TestSessions_IssueAndResolve(t *testing.T) {
	s := NewSessions(time.Hour)
	userID := models.NewUserID()

	token, err := s.Issue(userID)
	require.NoError(t, err)
	assert.Len(t, token, 64, "32 random bytes hex encoded")

	resolved, ok := s.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, userID, resolved)
}

func TestSessions_TokensAreUnique(t *testing.T) {
	s := NewSessions(time.Hour)
	userID := models.NewUserID()

	a, err := s.Issue(userID)
	require.NoError(t, err)
	b, err := s.Issue(userID)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSessions_UnknownToken(t *testing.T) {
	s := NewSessions(time.Hour)

	_, ok := s.Resolve("deadbeef")
	assert.False(t, ok)
}

func TestSessions_Expiry(t *testing.T) {
	s := NewSessions(time.Minute)
	userID := models.NewUserID()

	token, err := s.Issue(userID)
	require.NoError(t, err)

	// Advance the clock past the TTL.
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, ok := s.Resolve(token)
	assert.False(t, ok, "expired token must not resolve")

	// The expired entry is gone even after the clock is restored.
	s.now = time.Now
	_, ok = s.Resolve(token)
	assert.False(t, ok)
}

func TestSessions_Revoke(t *testing.T) {
	s := NewSessions(time.Hour)
	userID := models.NewUserID()

	token, err := s.Issue(userID)
	require.NoError(t, err)

	s.Revoke(token)
	_, ok := s.Resolve(token)
	assert.False(t, ok)

	// Revoking again is a no-op.
	s.Revoke(token)
}
