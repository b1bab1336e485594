package jot

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/jotpad/jot/pkg/models"
)

// session pairs an authenticated user id with the token's expiry time.
type session struct {
	userID    models.UserID
	expiresAt time.Time
}

// Sessions is an in-memory bearer-token table. Tokens are opaque 256-bit
// random values; each maps to the user it authenticates until its TTL
// elapses. A production deployment with multiple instances would back this
// with a shared store (Redis or the database itself).
type Sessions struct {
	mu     sync.RWMutex
	tokens map[string]session
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions creates a session table issuing tokens valid for ttl.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		tokens: make(map[string]session),
		ttl:    ttl,
		now:    time.Now,
	}
}

// generateToken creates a 32-byte random token encoded as hex, giving 256
// bits of entropy from crypto/rand.
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Issue creates a new token for the given user.
func (s *Sessions) Issue(userID models.UserID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.tokens[token] = session{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

// Resolve returns the user id a token authenticates, or false when the token
// is unknown or expired. Expired entries are removed on sight.
func (s *Sessions) Resolve(token string) (models.UserID, bool) {
	s.mu.RLock()
	sess, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return models.UserID{}, false
	}
	if s.now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return models.UserID{}, false
	}
	return sess.userID, true
}

// Revoke removes a token. Revoking an unknown token is a no-op.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
