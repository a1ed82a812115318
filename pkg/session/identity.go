package session

import "github.com/google/uuid"

// Identity is the resolved authentication state of a request: either
// anonymous or authenticated with a user ID. Guards and handlers branch
// on this value instead of poking at the raw session data bag.
type Identity struct {
	userID        uuid.UUID
	authenticated bool
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns an identity carrying the given user ID.
func Authenticated(userID uuid.UUID) Identity {
	return Identity{userID: userID, authenticated: true}
}

// IsAuthenticated reports whether the identity carries a user.
func (i Identity) IsAuthenticated() bool {
	return i.authenticated
}

// UserID returns the authenticated user's ID. The bool is false for the
// anonymous identity.
func (i Identity) UserID() (uuid.UUID, bool) {
	return i.userID, i.authenticated
}
