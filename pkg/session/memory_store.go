package session

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. It backs tests
// and single-instance development runs; expired records are swept by
// the shared Cleaner, same as the durable backends.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session.
func (m *MemoryStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sess.Token] = copySession(sess)
	return nil
}

// Get retrieves a session by token. Reading an expired record deletes
// it and reports ErrSessionExpired.
func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	// The write lock covers the expiry check and the copy: Touch swaps
	// records concurrently, and the copy must not read a record
	// mid-replacement.
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[token]
	if !exists {
		return nil, ErrSessionNotFound
	}

	if sess.IsExpired() {
		delete(m.sessions, token)
		return nil, ErrSessionExpired
	}

	return copySession(sess), nil
}

// Update replaces an existing session record.
func (m *MemoryStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sess.Token]; !exists {
		return ErrSessionNotFound
	}

	m.sessions[sess.Token] = copySession(sess)
	return nil
}

// Touch moves only the expiry time of an existing session. The entry is
// replaced with a fresh copy so readers holding an earlier copy never
// share mutable state with the store.
func (m *MemoryStore) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[token]
	if !exists {
		return ErrSessionNotFound
	}

	touched := copySession(sess)
	touched.ExpiresAt = expiresAt
	m.sessions[token] = touched
	return nil
}

// Delete removes a session by token.
func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions and returns the count.
func (m *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	now := time.Now()
	for token, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}

	return removed, nil
}

// Len returns the number of live records, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// copySession clones the record so callers never share mutable state
// with the store.
func copySession(sess *Session) *Session {
	clone := *sess
	if sess.Data != nil {
		clone.Data = make(map[string]any, len(sess.Data))
		maps.Copy(clone.Data, sess.Data)
	}
	return &clone
}
