package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGVerifier stores credentials in PostgreSQL. Password hashes are
// bcrypt digests; lookups are case-insensitive on email.
type PGVerifier struct {
	pool *pgxpool.Pool
}

func NewPGVerifier(pool *pgxpool.Pool) *PGVerifier {
	if pool == nil {
		panic("identity: pgxpool is required")
	}
	return &PGVerifier{pool: pool}
}

// EnsureSchema provisions the users and credentials tables when they do
// not exist yet.
func (v *PGVerifier) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS credentials (
			user_id UUID PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
			password_hash TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := v.pool.Exec(ctx, ddl); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

func (v *PGVerifier) Verify(ctx context.Context, email, password string) (uuid.UUID, error) {
	var (
		userID uuid.UUID
		hash   string
	)
	err := v.pool.QueryRow(ctx, `
		SELECT u.id, c.password_hash
		FROM users u
		JOIN credentials c ON c.user_id = u.id
		WHERE LOWER(u.email) = LOWER($1)`,
		normalizeEmail(email),
	).Scan(&userID, &hash)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Hide whether the account exists.
		return uuid.Nil, ErrInvalidCredentials
	case err != nil:
		return uuid.Nil, errors.Join(ErrUnavailable, err)
	}

	if err := verifyPassword(hash, password); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return userID, nil
}

func (v *PGVerifier) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := v.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, errors.Join(ErrUnavailable, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var userID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email) VALUES (LOWER($1))
		ON CONFLICT (email) DO UPDATE SET email = users.email
		RETURNING id`,
		normalizeEmail(email),
	).Scan(&userID)
	if err != nil {
		return uuid.Nil, errors.Join(ErrUnavailable, err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO credentials (user_id, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, hash,
	)
	if err != nil {
		return uuid.Nil, errors.Join(ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return uuid.Nil, ErrAlreadyRegistered
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, errors.Join(ErrUnavailable, err)
	}
	return userID, nil
}
