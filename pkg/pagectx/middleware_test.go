package pagectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusweb/pkg/environment"
	"github.com/campuskit/campusweb/pkg/pagectx"
)

func capture(dst *pagectx.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pc, _ := pagectx.FromContext(r.Context())
		*dst = pc
		w.WriteHeader(http.StatusOK)
	}
}

func TestMiddlewareSeedsContext(t *testing.T) {
	var got pagectx.Context

	morning := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	h := environment.Middleware(environment.Development)(
		pagectx.Middleware(
			pagectx.WithClock(func() time.Time { return morning }),
			pagectx.WithThemePicker(func(n int) int { return 1 }),
		)(capture(&got)),
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?debug=1&tab=courses", nil))

	assert.Equal(t, "development", got.Env)
	assert.Equal(t, "Good Morning", got.Greeting)
	assert.Equal(t, "green-theme", got.ThemeClass)
	assert.Empty(t, got.Styles)
	assert.Equal(t, "1", got.Query.Get("debug"))
	assert.Equal(t, "courses", got.Query.Get("tab"))
}

func TestThemeClosure(t *testing.T) {
	var got pagectx.Context
	h := pagectx.Middleware()(capture(&got))

	// No uniformity requirement, only closure over the fixed set.
	for range 1000 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.True(t, pagectx.IsTheme(got.ThemeClass), "unexpected theme %q", got.ThemeClass)
	}
}

func TestStyleAccumulation(t *testing.T) {
	var got pagectx.Context

	r := chi.NewRouter()
	r.Use(pagectx.Middleware())
	r.Use(pagectx.Style("/css/site.css"))
	r.Route("/catalog", func(r chi.Router) {
		r.Use(pagectx.Style("/css/catalog.css"))
		r.Get("/", capture(&got))
		r.Get("/{slug}", capture(&got))
	})
	r.Get("/", capture(&got))

	t.Run("nested route accumulates ancestors in order", func(t *testing.T) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog/cs-101", nil))
		assert.Equal(t, []string{"/css/site.css", "/css/catalog.css"}, got.Styles)
	})

	t.Run("sibling route is unaffected", func(t *testing.T) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"/css/site.css"}, got.Styles)
	})
}

func TestFromContextMissing(t *testing.T) {
	pc, ok := pagectx.FromContext(t.Context())
	assert.False(t, ok)
	assert.Empty(t, pc.Styles)
}
