package session

import (
	"net/http"
	"time"

	"github.com/campuskit/campusweb/pkg/cookie"
)

// CookieTransport carries the session token in an HMAC-signed,
// HTTP-only cookie.
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
	secure     bool
	options    []cookie.Option
}

// NewCookieTransport creates a cookie-based transport. secure marks the
// cookie Secure, which the composition root enables outside development.
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, secure bool, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		secure:     secure,
		options:    opts,
	}
}

// GetToken extracts and verifies the session token from the cookie.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookieMgr.GetSigned(r, t.cookieName)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return token, nil
}

// SetToken stores the signed session token in a cookie.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, maxAge time.Duration) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(maxAge.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if t.secure {
		opts = append(opts, cookie.WithSecure(true))
	}
	opts = append(opts, t.options...)

	return t.cookieMgr.SetSigned(w, t.cookieName, token, opts...)
}

// ClearToken removes the session cookie.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}
