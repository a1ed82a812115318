package session

import "time"

// Config holds session configuration.
//
// TTL is the server-side authority on session lifetime. CookieMaxAge is
// an upper bound for the client copy only; the store decides whether a
// presented token is still live.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// TTL is the server-side session lifetime.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CookieMaxAge caps the client-side cookie lifetime.
	CookieMaxAge time.Duration `env:"SESSION_COOKIE_MAX_AGE" envDefault:"24h"`

	// CleanupInterval is how often the background cleaner sweeps expired
	// records.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"15m"`

	// OpTimeout bounds every store operation so a stalled backend cannot
	// hang request handling.
	OpTimeout time.Duration `env:"SESSION_STORE_TIMEOUT" envDefault:"3s"`

	// SecureCookies marks the session cookie Secure. Enabled outside
	// development by the composition root.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the defaults used when no configuration is
// provided.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		TTL:             24 * time.Hour,
		CookieMaxAge:    24 * time.Hour,
		CleanupInterval: 15 * time.Minute,
		OpTimeout:       3 * time.Second,
	}
}
