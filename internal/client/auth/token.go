// Package auth holds the client's bearer-token state. Obtaining the token is
// the remote gateway's login call; everything else in the core only needs to
// read it, so the store stays deliberately thin.
package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore gives the gateway access to the current session credentials.
type TokenStore interface {
	// Token returns the current bearer token, or "" when logged out.
	Token() string

	// UserName returns the logged-in user's display name, or "".
	UserName() string

	// Set replaces the stored credentials.
	Set(token, userName string)

	// Clear drops the stored credentials.
	Clear()
}

// MemoryTokenStore is an in-memory TokenStore. Credentials live only for the
// process lifetime, matching a browser session.
type MemoryTokenStore struct {
	mu       sync.RWMutex
	token    string
	userName string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

func (s *MemoryTokenStore) Set(token, userName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.userName = userName
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userName = ""
}

// TokenExpired reports whether the bearer token carries an exp claim in the
// past. The signature is not verified; the server remains the authority and
// this check only avoids doomed requests. Unparseable tokens count as
// expired, tokens without an exp claim as still valid.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
