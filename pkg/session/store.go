package session

import (
	"context"
	"time"
)

// Store defines the interface for session persistence. Operations on
// distinct tokens are independent; implementations serialize conflicting
// writes to the same token (last write wins — one visitor issues
// requests roughly sequentially).
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token. Expired records yield
	// ErrSessionExpired and are removed.
	Get(ctx context.Context, token string) (*Session, error)

	// Update replaces an existing session record.
	Update(ctx context.Context, session *Session) error

	// Touch moves only the expiry time of an existing session.
	Touch(ctx context.Context, token string, expiresAt time.Time) error

	// Delete removes a session by token. Deleting an absent token is
	// not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all past-expiry sessions and returns how
	// many were swept.
	DeleteExpired(ctx context.Context) (int64, error)
}
