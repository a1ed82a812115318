package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record for one visitor, keyed by an opaque
// token carried in a signed cookie. The store exclusively owns
// persistence; request handlers hold a transient copy reconstructed at
// the start of each request.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Token     string         `json:"token"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}

// New creates an anonymous session that expires after ttl.
func New(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		Data:      make(map[string]any),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired reports whether the session has passed its expiry time.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Identity derives the authentication state from the live record.
// An expired session is anonymous regardless of its stored user ID, so
// a record that lapses between guard check and handler execution cannot
// grant access.
func (s *Session) Identity() Identity {
	if s == nil || s.UserID == nil || s.IsExpired() {
		return Anonymous()
	}
	return Authenticated(*s.UserID)
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}
