package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/campuskit/campusweb/pkg/pagectx"
)

//go:embed templates
var templatesFS embed.FS

var ErrTemplateNotFound = errors.New("view.template_not_found")

// Renderer produces a complete response body for a named template.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// Data is the envelope every template receives. Page carries the
// per-request presentation context; Content is page-specific.
type Data struct {
	Title    string
	Page     pagectx.Context
	LoggedIn bool
	Content  any
}

// Engine renders embedded html/template pages inside a shared layout.
type Engine struct {
	pages map[string]*template.Template
}

// NewEngine parses every page under templates/pages and templates/errors
// against the shared layout. Parse failures are programmer errors and
// surface at startup.
func NewEngine() (*Engine, error) {
	layout, err := fs.ReadFile(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("view: read layout: %w", err)
	}

	e := &Engine{pages: make(map[string]*template.Template)}
	for _, root := range []string{"templates/pages", "templates/errors"} {
		err := fs.WalkDir(templatesFS, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
				return err
			}
			body, err := fs.ReadFile(templatesFS, p)
			if err != nil {
				return err
			}
			t, err := template.New("layout").Parse(string(layout))
			if err != nil {
				return fmt.Errorf("view: parse layout: %w", err)
			}
			if _, err := t.Parse(string(body)); err != nil {
				return fmt.Errorf("view: parse %s: %w", p, err)
			}
			e.pages[pageName(root, p)] = t
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// MustNewEngine is NewEngine that panics on error.
func MustNewEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return e
}

// Render executes the named page into a buffer. The full body comes
// back only on success, so a half-written template never reaches the
// client.
func (e *Engine) Render(name string, data any) ([]byte, error) {
	t, ok := e.pages[name]
	if !ok {
		return nil, errors.Join(ErrTemplateNotFound, fmt.Errorf("no template %q", name))
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("view: render %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Names lists the registered page names, for diagnostics.
func (e *Engine) Names() []string {
	out := make([]string, 0, len(e.pages))
	for name := range e.pages {
		out = append(out, name)
	}
	return out
}

// pageName maps templates/pages/faculty/list.html to "faculty/list" and
// templates/errors/404.html to "errors/404".
func pageName(root, p string) string {
	rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
	rel = strings.TrimSuffix(rel, ".html")
	if path.Base(root) == "errors" {
		return "errors/" + rel
	}
	return rel
}
