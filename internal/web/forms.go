package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/campuskit/campusweb/internal/identity"
	"github.com/campuskit/campusweb/pkg/session"
)

type contactContent struct {
	Values url.Values
	Errors []string
	Sent   bool
}

func (s *Site) contactForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "contact", "Contact Us", contactContent{Values: url.Values{}})
}

func (s *Site) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, &HTTPError{Status: http.StatusBadRequest, Message: "Malformed form submission", Err: err})
		return
	}

	content := contactContent{Values: r.PostForm}
	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	message := strings.TrimSpace(r.PostFormValue("message"))

	if name == "" {
		content.Errors = append(content.Errors, "Name is required.")
	}
	if !strings.Contains(email, "@") {
		content.Errors = append(content.Errors, "A valid email address is required.")
	}
	if message == "" {
		content.Errors = append(content.Errors, "Message cannot be empty.")
	}

	if len(content.Errors) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "contact", "Contact Us", content)
		return
	}

	// Remember the sender's name for prefilling later visits. Losing it
	// is harmless, so failures are not surfaced.
	_ = s.sessions.SetValue(r.Context(), w, r, "contact.name", name)

	s.log.InfoContext(r.Context(), "contact message received",
		"name", name, "email", email, "length", len(message))

	content.Sent = true
	s.render(w, r, http.StatusOK, "contact", "Contact Us", content)
}

type registerContent struct {
	Values url.Values
	Errors []string
	Done   bool
}

func (s *Site) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", "Register", registerContent{Values: url.Values{}})
}

func (s *Site) registerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, &HTTPError{Status: http.StatusBadRequest, Message: "Malformed form submission", Err: err})
		return
	}

	content := registerContent{Values: url.Values{"email": {r.PostFormValue("email")}}}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm")

	if !strings.Contains(email, "@") {
		content.Errors = append(content.Errors, "A valid email address is required.")
	}
	if len(password) < 8 {
		content.Errors = append(content.Errors, "Password must be at least 8 characters.")
	}
	if password != confirm {
		content.Errors = append(content.Errors, "Passwords do not match.")
	}

	if len(content.Errors) == 0 {
		if s.registrar == nil {
			content.Errors = append(content.Errors, "Registration is not available right now.")
		} else if _, err := s.registrar.Register(r.Context(), email, password); err != nil {
			switch {
			case errors.Is(err, identity.ErrAlreadyRegistered):
				content.Errors = append(content.Errors, "An account with that email already exists.")
			case errors.Is(err, identity.ErrUnavailable):
				s.fail(w, r, err)
				return
			default:
				content.Errors = append(content.Errors, "Could not create the account.")
			}
		}
	}

	if len(content.Errors) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "register", "Register", content)
		return
	}

	content.Done = true
	s.render(w, r, http.StatusOK, "register", "Register", content)
}

type loginContent struct {
	Email string
	Error string
}

func (s *Site) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", "Log In", loginContent{})
}

func (s *Site) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, &HTTPError{Status: http.StatusBadRequest, Message: "Malformed form submission", Err: err})
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	userID, err := s.verifier.Verify(r.Context(), email, password)
	if err != nil {
		// Bad credentials re-render the form; only infrastructure
		// failures reach the error pipeline.
		if errors.Is(err, identity.ErrInvalidCredentials) {
			s.render(w, r, http.StatusUnauthorized, "login", "Log In", loginContent{
				Email: email,
				Error: "Invalid email or password.",
			})
			return
		}
		s.fail(w, r, err)
		return
	}

	if err := s.sessions.Authenticate(r.Context(), w, r, userID); err != nil {
		s.fail(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "user logged in", "user_id", userID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Site) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(r.Context(), w, r); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Site) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.IdentityFromContext(r.Context()).UserID()
	if !ok {
		// requireLogin already filtered this, so reaching here means the
		// session flipped mid-request.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "dashboard", "Dashboard", struct{ UserID string }{userID.String()})
}
