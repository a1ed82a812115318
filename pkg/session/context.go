package session

import "context"

type sessionContextKey struct{}

// WithSession adds a session to the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext retrieves the session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok
}

// IdentityFromContext resolves the authentication state of the request.
// A missing session is anonymous.
func IdentityFromContext(ctx context.Context) Identity {
	sess, ok := FromContext(ctx)
	if !ok {
		return Anonymous()
	}
	return sess.Identity()
}
