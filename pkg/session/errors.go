package session

import "errors"

var (
	// ErrSessionNotFound indicates no session exists for the token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the session has passed its expiry.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidSession indicates a malformed or incomplete record.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrStoreUnavailable indicates the backing storage did not answer.
	// Callers degrade to an anonymous session rather than failing the
	// request.
	ErrStoreUnavailable = errors.New("session.store_unavailable")
)
