package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// StaticConfig seeds a fixed account for deployments without a user
// database. The hash is a bcrypt digest, never a plaintext password.
type StaticConfig struct {
	Email        string `env:"DEMO_USER_EMAIL"`
	PasswordHash string `env:"DEMO_USER_PASSWORD_HASH"`
}

type staticAccount struct {
	userID uuid.UUID
	hash   string
}

// StaticVerifier verifies against an in-memory account table. It also
// implements Registrar so the register flow works end to end in
// memory-backed deployments.
type StaticVerifier struct {
	mu       sync.RWMutex
	accounts map[string]staticAccount
}

// NewStaticVerifier builds a verifier from cfg. An empty config yields
// a verifier that rejects everything until Register is called.
func NewStaticVerifier(cfg StaticConfig) *StaticVerifier {
	v := &StaticVerifier{accounts: make(map[string]staticAccount)}
	if cfg.Email != "" && cfg.PasswordHash != "" {
		v.accounts[normalizeEmail(cfg.Email)] = staticAccount{
			userID: uuid.New(),
			hash:   cfg.PasswordHash,
		}
	}
	return v
}

func (v *StaticVerifier) Verify(_ context.Context, email, password string) (uuid.UUID, error) {
	v.mu.RLock()
	account, ok := v.accounts[normalizeEmail(email)]
	v.mu.RUnlock()
	if !ok {
		// Burn a comparison so unknown emails cost the same as bad
		// passwords.
		_ = verifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4q1Zt0a5u0y0a0a0a0a0a0a0a0a", password)
		return uuid.Nil, ErrInvalidCredentials
	}
	if err := verifyPassword(account.hash, password); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return account.userID, nil
}

func (v *StaticVerifier) Register(_ context.Context, email, password string) (uuid.UUID, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return uuid.Nil, err
	}

	key := normalizeEmail(email)
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, exists := v.accounts[key]; exists {
		return uuid.Nil, ErrAlreadyRegistered
	}
	account := staticAccount{userID: uuid.New(), hash: hash}
	v.accounts[key] = account
	return account.userID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
