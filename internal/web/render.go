package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/campuskit/campusweb/internal/view"
	"github.com/campuskit/campusweb/pkg/environment"
	"github.com/campuskit/campusweb/pkg/pagectx"
	"github.com/campuskit/campusweb/pkg/session"
)

// render executes a page template and writes the result. Render
// failures fall through to the error pipeline, so a broken template
// yields the 500 page instead of a torn response.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name, title string, content any) {
	pc, _ := pagectx.FromContext(r.Context())
	data := view.Data{
		Title:    title,
		Page:     pc,
		LoggedIn: session.IdentityFromContext(r.Context()).IsAuthenticated(),
		Content:  content,
	}

	body, err := s.views.Render(name, data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// fail is the terminal error handler. It maps the error to a status,
// logs it, redacts internal detail outside development, and renders the
// matching error page. If even that fails, it falls back to plain text.
func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"
	detail := err.Error()

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Status
		message = httpErr.Message
	}

	logAttrs := []any{
		slog.Int("status", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("user_agent", r.UserAgent()),
		slog.Any("error", err),
	}
	if status >= 500 {
		s.log.ErrorContext(r.Context(), "request failed", logAttrs...)
	} else {
		s.log.InfoContext(r.Context(), "request rejected", logAttrs...)
	}

	// Headers already sent: the response cannot be replaced, so only log.
	if ww, ok := w.(chimw.WrapResponseWriter); ok && ww.Status() != 0 {
		return
	}

	env := environment.FromContext(r.Context())
	if status >= 500 && !env.IsDevelopment() {
		detail = ""
	}

	name := "errors/500"
	var content any = struct {
		Status  int
		Message string
		Detail  string
	}{status, message, detail}
	if status == http.StatusNotFound {
		name = "errors/404"
		content = struct{ Message string }{message}
	}

	pc, _ := pagectx.FromContext(r.Context())
	body, renderErr := s.views.Render(name, view.Data{
		Title:   fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Page:    pc,
		Content: content,
	})
	if renderErr != nil {
		s.log.ErrorContext(r.Context(), "error page render failed", slog.Any("error", renderErr))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, "%d %s", status, message)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// notFound is chi's terminal handler for unmatched routes.
func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, NotFoundError("The page %q does not exist", r.URL.Path))
}
