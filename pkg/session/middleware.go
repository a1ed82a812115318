package session

import "net/http"

// Middleware resolves or lazily provisions the request's session and
// attaches it to the context. An unreachable store degrades the request
// to a transient anonymous session inside Ensure, so the page still
// renders; only routes that require authentication will notice.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Ensure(r.Context(), w, r)
		if err != nil {
			// Token generation is the only path left that can fail; the
			// request continues without any session at all.
			next.ServeHTTP(w, r)
			return
		}

		m.touchIfStale(r.Context(), sess)

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
