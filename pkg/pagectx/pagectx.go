package pagectx

import (
	"net/url"
	"slices"
	"time"
)

// Context is the presentation bag handed to templates: built fresh per
// request, never persisted, and carried by value so no stage can mutate
// what an earlier stage produced. Adding a stylesheet returns a new
// Context rather than growing a shared slice.
type Context struct {
	// Env is the deployment mode, exposed so templates can branch on
	// development-only features.
	Env string

	// Greeting is derived from the server clock at request start.
	Greeting string

	// ThemeClass is one of the fixed theme identifiers, drawn at random
	// per request.
	ThemeClass string

	// Styles is the ordered list of stylesheet hrefs accumulated as the
	// request matched route-group prefixes.
	Styles []string

	// Query is a copy of the request's raw query parameters. It is
	// presentation-only: templates may inspect it, but nothing
	// downstream treats it as validated input.
	Query url.Values
}

// WithStyle returns a copy of c with href appended to the stylesheet
// list. The receiver is unchanged, so ancestor route groups keep their
// view of the context.
func (c Context) WithStyle(href string) Context {
	styles := make([]string, 0, len(c.Styles)+1)
	styles = append(styles, c.Styles...)
	c.Styles = append(styles, href)
	return c
}

// Themes is the fixed set of body classes a page can be rendered with.
var Themes = []string{"blue-theme", "green-theme", "red-theme"}

// IsTheme reports whether s is one of the fixed theme identifiers.
func IsTheme(s string) bool {
	return slices.Contains(Themes, s)
}

// GreetingAt maps a server-local time to the visitor greeting:
// [0,12) Good Morning, [12,18) Good Afternoon, [18,24) Good Evening.
func GreetingAt(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
