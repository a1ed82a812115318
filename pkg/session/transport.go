package session

import (
	"net/http"
	"time"
)

// Transport defines how session tokens travel between client and server.
type Transport interface {
	// GetToken extracts the session token from the request.
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session token in the response. maxAge caps the
	// client-side lifetime; server-side expiry remains the authority.
	SetToken(w http.ResponseWriter, token string, maxAge time.Duration) error

	// ClearToken removes the session token from the response.
	ClearToken(w http.ResponseWriter) error
}
