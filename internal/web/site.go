package web

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/campuskit/campusweb/internal/identity"
	"github.com/campuskit/campusweb/internal/view"
	"github.com/campuskit/campusweb/pkg/environment"
	"github.com/campuskit/campusweb/pkg/pagectx"
	"github.com/campuskit/campusweb/pkg/requestid"
	"github.com/campuskit/campusweb/pkg/session"
)

// Site bundles everything the HTTP handlers need.
type Site struct {
	log       *slog.Logger
	env       environment.Environment
	views     view.Renderer
	sessions  *session.Manager
	verifier  identity.Verifier
	registrar identity.Registrar
}

// Deps are the collaborators a Site requires. Logger defaults to
// slog.Default; everything else is mandatory.
type Deps struct {
	Logger    *slog.Logger
	Env       environment.Environment
	Views     view.Renderer
	Sessions  *session.Manager
	Verifier  identity.Verifier
	Registrar identity.Registrar
}

func NewSite(d Deps) *Site {
	if d.Views == nil {
		panic("web: view renderer is required")
	}
	if d.Sessions == nil {
		panic("web: session manager is required")
	}
	if d.Verifier == nil {
		panic("web: credential verifier is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Site{
		log:       d.Logger,
		env:       d.Env,
		views:     d.Views,
		sessions:  d.Sessions,
		verifier:  d.Verifier,
		registrar: d.Registrar,
	}
}

// Router assembles the full site: middleware pipeline, page routes,
// per-section stylesheet groups, static assets, and the terminal error
// handlers.
func (s *Site) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(s.env))
	r.Use(s.recoverer)
	r.Use(s.sessions.Middleware)
	r.Use(pagectx.Middleware())

	r.NotFound(s.notFound)

	r.Get("/", s.home)
	r.Get("/about", s.about)
	r.With(demoHeaders).Get("/demo", s.demo)
	r.Get("/test-error", s.testError)

	r.Route("/catalog", func(r chi.Router) {
		r.Use(pagectx.Style("/css/catalog.css"))
		r.Get("/", s.catalogList)
		r.Get("/{slug}", s.catalogDetail)
	})

	r.Route("/faculty", func(r chi.Router) {
		r.Use(pagectx.Style("/css/faculty.css"))
		r.Get("/", s.facultyList)
		r.Get("/{slug}", s.facultyDetail)
	})

	r.Route("/contact", func(r chi.Router) {
		r.Use(pagectx.Style("/css/contact.css"))
		r.Get("/", s.contactForm)
		r.Post("/", s.contactSubmit)
	})

	r.Route("/register", func(r chi.Router) {
		r.Use(pagectx.Style("/css/registration.css"))
		r.Get("/", s.registerForm)
		r.Post("/", s.registerSubmit)
	})

	r.Route("/login", func(r chi.Router) {
		r.Use(pagectx.Style("/css/login.css"))
		r.Get("/", s.loginForm)
		r.Post("/", s.loginSubmit)
	})

	r.Get("/logout", s.logout)
	r.With(s.requireLogin).Get("/dashboard", s.dashboard)

	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/css/*", http.FileServerFS(staticRoot))

	return r
}
