package pagectx

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/campuskit/campusweb/pkg/environment"
)

type contextKey struct{}

type builder struct {
	clock func() time.Time
	pickN func(n int) int
}

// Option configures the seed middleware.
type Option func(*builder)

// WithClock overrides the clock used for the greeting. Tests pin it to
// exercise the time-of-day boundaries.
func WithClock(clock func() time.Time) Option {
	return func(b *builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithThemePicker overrides the random source for theme selection. The
// function receives the number of themes and returns an index.
func WithThemePicker(pick func(n int) int) Option {
	return func(b *builder) {
		if pick != nil {
			b.pickN = pick
		}
	}
}

// Middleware seeds the presentation context for every request: the
// deployment mode from the request context, the clock-derived greeting,
// a randomly drawn theme, and a copy of the query parameters. It runs
// unconditionally, before route dispatch, so even requests that end in
// the error pipeline carry a fully populated context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	b := &builder{
		clock: time.Now,
		pickN: rand.IntN,
	}
	for _, opt := range opts {
		opt(b)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pc := Context{
				Env:        environment.FromContext(r.Context()).String(),
				Greeting:   GreetingAt(b.clock()),
				ThemeClass: Themes[b.pickN(len(Themes))],
				Query:      cloneQuery(r.URL.Query()),
			}

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), pc)))
		})
	}
}

// Style returns a route-group middleware that appends one stylesheet
// reference. Nested groups stack: a request matching several prefixes
// accumulates every ancestor's stylesheet in match order.
func Style(href string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pc, _ := FromContext(r.Context())
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), pc.WithStyle(href))))
		})
	}
}

// WithContext attaches the presentation context to ctx.
func WithContext(ctx context.Context, pc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, pc)
}

// FromContext returns the presentation context for the request. The
// zero value is returned when no seed middleware ran, so error pages
// can always render.
func FromContext(ctx context.Context) (Context, bool) {
	pc, ok := ctx.Value(contextKey{}).(Context)
	return pc, ok
}

func cloneQuery(q url.Values) url.Values {
	clone := make(url.Values, len(q))
	for k, vs := range q {
		clone[k] = slices.Clone(vs)
	}
	return clone
}
