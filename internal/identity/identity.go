package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("identity.invalid_credentials")
	ErrAlreadyRegistered  = errors.New("identity.already_registered")
	ErrUnavailable        = errors.New("identity.backend_unavailable")
)

// Verifier authenticates an email/password pair and returns the user ID
// on success. Implementations must return ErrInvalidCredentials for any
// mismatch without revealing whether the email exists.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (uuid.UUID, error)
}

// Registrar creates a new credential record.
type Registrar interface {
	Register(ctx context.Context, email, password string) (uuid.UUID, error)
}
