package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on a PostgreSQL table. The table is
// provisioned on first use; concurrent first use by multiple server
// instances is tolerated.
type PGStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPGStore creates a PostgreSQL-backed session store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{
		pool:  pool,
		table: "sessions",
	}
}

// EnsureSchema provisions the sessions table if it is absent. The
// statement is idempotent; the duplicate-object errors PostgreSQL can
// raise when two instances race the same CREATE are swallowed.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS sessions (
			token      text PRIMARY KEY,
			id         uuid NOT NULL,
			user_id    uuid,
			data       jsonb NOT NULL DEFAULT '{}'::jsonb,
			created_at timestamptz NOT NULL,
			expires_at timestamptz NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at);`

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		if isDuplicateObject(err) {
			return nil
		}
		return s.wrap(err)
	}
	return nil
}

// Create stores a new session.
func (s *PGStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(sess.Data)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (token, id, user_id, data, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sess.Token, sess.ID, sess.UserID, data, sess.CreatedAt, sess.ExpiresAt,
	)
	return s.wrap(err)
}

// Get retrieves a session by token. Expired rows are deleted on read.
func (s *PGStore) Get(ctx context.Context, token string) (*Session, error) {
	var (
		sess Session
		data []byte
	)

	err := s.pool.QueryRow(ctx,
		`SELECT token, id, user_id, data, created_at, expires_at
		 FROM sessions WHERE token = $1`,
		token,
	).Scan(&sess.Token, &sess.ID, &sess.UserID, &data, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, s.wrap(err)
	}

	if sess.IsExpired() {
		_, _ = s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
		return nil, ErrSessionExpired
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &sess.Data); err != nil {
			return nil, errors.Join(ErrInvalidSession, err)
		}
	}

	return &sess, nil
}

// Update replaces an existing session record.
func (s *PGStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(sess.Data)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET user_id = $2, data = $3, expires_at = $4 WHERE token = $1`,
		sess.Token, sess.UserID, data, sess.ExpiresAt,
	)
	if err != nil {
		return s.wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Touch moves only the expiry time of an existing session.
func (s *PGStore) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET expires_at = $2 WHERE token = $1`,
		token, expiresAt,
	)
	if err != nil {
		return s.wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes a session by token.
func (s *PGStore) Delete(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return s.wrap(err)
}

// DeleteExpired removes all past-expiry sessions in one statement.
func (s *PGStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, s.wrap(err)
	}
	return tag.RowsAffected(), nil
}

// wrap maps transport-level failures to ErrStoreUnavailable so callers
// can degrade to anonymous instead of surfacing database errors.
func (s *PGStore) wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStoreUnavailable, err)
}

// isDuplicateObject detects SQLSTATE 42P07 (duplicate_table) and 23505
// (unique_violation on catalog rows), both raised when concurrent
// instances provision the schema at the same moment.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "42P07" || pgErr.Code == "23505"
}
