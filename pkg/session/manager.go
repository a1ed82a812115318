package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/campusweb/pkg/cookie"
)

// Manager handles session resolution, establishment and teardown for
// HTTP requests. It owns the cookie transport; the Store owns
// persistence.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	log           *slog.Logger
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
}

// NewManager creates a session manager with the given options. A
// transport is required unless a cookie manager is supplied via
// WithCookieManager; a missing store defaults to the in-memory
// implementation.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore()
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.transport == nil {
		if m.cookieManager == nil {
			// Fail fast on misconfiguration rather than issuing unsigned cookies.
			panic("session: cookie manager is required when using the default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	return m
}

// Ensure resolves the request's session, lazily provisioning a new
// anonymous one (and setting its cookie) when the client presented no
// valid token. When the store is unreachable the request degrades to a
// transient anonymous session that is never persisted: the failure is
// logged, not surfaced to the visitor.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := m.Get(ctx, r)
	if err == nil {
		return sess, nil
	}

	if errors.Is(err, ErrStoreUnavailable) {
		m.log.ErrorContext(ctx, "session store unavailable, continuing anonymous", slog.Any("error", err))
		return New("", m.config.TTL), nil
	}

	if !errors.Is(err, ErrSessionNotFound) {
		// Expired or tampered token: drop the stale cookie before reissuing.
		_ = m.transport.ClearToken(w)
	}

	sess, err = m.create(ctx)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			m.log.ErrorContext(ctx, "session store unavailable, continuing anonymous", slog.Any("error", err))
			return New("", m.config.TTL), nil
		}
		return nil, err
	}

	if err := m.transport.SetToken(w, sess.Token, m.config.CookieMaxAge); err != nil {
		_ = m.deleteBounded(ctx, sess.Token)
		return nil, err
	}

	return sess, nil
}

// Get retrieves the existing session for the request, or an error when
// the client has no valid token.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	ctx, cancel := m.bound(ctx)
	defer cancel()

	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if sess.IsExpired() {
		return nil, ErrSessionExpired
	}

	return sess, nil
}

// Authenticate transitions the request's session from anonymous to
// authenticated. The token is rotated so a pre-login token fixed in the
// client by an attacker cannot inherit the new privileges.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	old, err := m.Get(ctx, r)

	token, tokenErr := generateToken()
	if tokenErr != nil {
		return tokenErr
	}

	sess := New(token, m.config.TTL)
	sess.UserID = &userID
	if err == nil {
		// Carry non-auth data (form state, preferences) across the rotation.
		for k, v := range old.Data {
			sess.Data[k] = v
		}
	}

	bctx, cancel := m.bound(ctx)
	defer cancel()

	if err == nil {
		_ = m.store.Delete(bctx, old.Token)
	}
	if err := m.store.Create(bctx, sess); err != nil {
		return err
	}

	return m.transport.SetToken(w, sess.Token, m.config.CookieMaxAge)
}

// Destroy deletes the session record and expires the cookie. Used by
// logout; the next request starts anonymous.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		if err := m.deleteBounded(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
			m.log.ErrorContext(ctx, "failed to delete session record", slog.Any("error", err))
		}
	}
	return m.transport.ClearToken(w)
}

// SetValue writes a key into the request's session, provisioning one if
// needed, and flushes the record back to the store.
func (m *Manager) SetValue(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error {
	sess, err := m.Ensure(ctx, w, r)
	if err != nil {
		return err
	}
	sess.Set(key, value)

	ctx, cancel := m.bound(ctx)
	defer cancel()
	return m.store.Update(ctx, sess)
}

// Config returns the manager's effective configuration.
func (m *Manager) Config() Config {
	return m.config
}

// touchIfStale slides the expiry forward once a session has burned
// through half its TTL. Failures only cost earlier expiry, so they are
// logged and dropped.
func (m *Manager) touchIfStale(ctx context.Context, sess *Session) {
	if time.Until(sess.ExpiresAt) > m.config.TTL/2 {
		return
	}

	ctx, cancel := m.bound(ctx)
	defer cancel()

	if err := m.store.Touch(ctx, sess.Token, time.Now().Add(m.config.TTL)); err != nil {
		m.log.DebugContext(ctx, "failed to touch session", slog.Any("error", err))
	}
}

func (m *Manager) create(ctx context.Context) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sess := New(token, m.config.TTL)

	ctx, cancel := m.bound(ctx)
	defer cancel()

	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (m *Manager) deleteBounded(ctx context.Context, token string) error {
	ctx, cancel := m.bound(ctx)
	defer cancel()
	return m.store.Delete(ctx, token)
}

// bound caps a store operation with the configured timeout so a slow
// backend cannot stall the request pipeline.
func (m *Manager) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.config.OpTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.config.OpTimeout)
}

// generateToken creates a cryptographically secure opaque token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
