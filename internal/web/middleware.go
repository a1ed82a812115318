package web

import (
	"fmt"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/campuskit/campusweb/pkg/session"
)

// recoverer converts panics into the standard error pipeline so a
// panicking handler produces the same 500 page as a returned error. It
// also wraps the writer so the pipeline can tell whether headers went
// out already.
func (s *Site) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.fail(ww, r, fmt.Errorf("panic: %v", rec))
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

// demoHeaders adds the demonstration headers the /demo page documents.
func demoHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Demo-Mode", "enabled")
		w.Header().Set("X-Served-At", time.Now().UTC().Format(time.RFC3339))
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// requireLogin guards a route behind authentication. Anonymous
// visitors, including those degraded by an unreachable session store,
// are sent to the login form.
func (s *Site) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.IdentityFromContext(r.Context()).IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
