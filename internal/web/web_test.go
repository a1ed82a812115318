package web_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusweb/internal/identity"
	"github.com/campuskit/campusweb/internal/view"
	"github.com/campuskit/campusweb/internal/web"
	"github.com/campuskit/campusweb/pkg/cookie"
	"github.com/campuskit/campusweb/pkg/environment"
	"github.com/campuskit/campusweb/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type siteOptions struct {
	env   environment.Environment
	store session.Store
}

func newTestServer(t *testing.T, opts siteOptions) (*httptest.Server, *http.Client) {
	t.Helper()

	if opts.env == "" {
		opts.env = environment.Development
	}
	if opts.store == nil {
		opts.store = session.NewMemoryStore()
	}

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	mgr := session.NewManager(
		session.WithStore(opts.store),
		session.WithCookieManager(cookies),
		session.WithLogger(slog.New(slog.DiscardHandler)),
	)

	hash, err := identity.HashPassword("correct horse")
	require.NoError(t, err)
	verifier := identity.NewStaticVerifier(identity.StaticConfig{
		Email:        "dean@example.edu",
		PasswordHash: hash,
	})

	site := web.NewSite(web.Deps{
		Logger:    slog.New(slog.DiscardHandler),
		Env:       opts.env,
		Views:     view.MustNewEngine(),
		Sessions:  mgr,
		Verifier:  verifier,
		Registrar: verifier,
	})

	srv := httptest.NewServer(site.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(rawURL, form)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func sessionCookie(t *testing.T, client *http.Client, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "sid" {
			return c.Value
		}
	}
	return ""
}

func TestPagesRender(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	tests := []struct {
		path string
		want string
	}{
		{"/", "Welcome to Campus College"},
		{"/about", "About Campus College"},
		{"/catalog", "Course Catalog"},
		{"/catalog/cs-101", "Introduction to Computer Science"},
		{"/faculty", "Faculty Directory"},
		{"/faculty/elena-vasquez", "Elena Vasquez"},
		{"/contact", "Contact Us"},
		{"/register", "Create an Account"},
		{"/login", "Log In"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, client, srv.URL+tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestSessionCookieIssuedOnFirstVisit(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	require.Empty(t, sessionCookie(t, client, srv.URL))
	get(t, client, srv.URL+"/")
	first := sessionCookie(t, client, srv.URL)
	assert.NotEmpty(t, first)

	get(t, client, srv.URL+"/about")
	assert.Equal(t, first, sessionCookie(t, client, srv.URL), "token must be stable across requests")
}

func TestSectionStylesheets(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	_, body := get(t, client, srv.URL+"/catalog")
	assert.Contains(t, body, `href="/css/catalog.css"`)

	_, body = get(t, client, srv.URL+"/")
	assert.NotContains(t, body, `href="/css/catalog.css"`)
	assert.Contains(t, body, `href="/css/site.css"`)
}

func TestStaticAssets(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	resp, body := get(t, client, srv.URL+"/css/site.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "blue-theme")
}

func TestDemoHeaders(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	resp, _ := get(t, client, srv.URL+"/demo")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "enabled", resp.Header.Get("X-Demo-Mode"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestNotFoundPage(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	t.Run("unmatched route", func(t *testing.T) {
		resp, body := get(t, client, srv.URL+"/no/such/page")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "404 Not Found")
	})

	t.Run("unknown faculty slug", func(t *testing.T) {
		resp, body := get(t, client, srv.URL+"/faculty/nobody-here")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		// html/template escapes the quotes around the slug.
		assert.Contains(t, body, `Faculty member &#34;nobody-here&#34; not found`)
	})

	t.Run("unknown course slug", func(t *testing.T) {
		resp, _ := get(t, client, srv.URL+"/catalog/basket-weaving-999")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestErrorRedaction(t *testing.T) {
	t.Run("development shows detail", func(t *testing.T) {
		srv, client := newTestServer(t, siteOptions{env: environment.Development})
		resp, body := get(t, client, srv.URL+"/test-error")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, body, "this is a test error")
	})

	t.Run("production redacts detail", func(t *testing.T) {
		srv, client := newTestServer(t, siteOptions{env: environment.Production})
		resp, body := get(t, client, srv.URL+"/test-error")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, body, "Internal Server Error")
		assert.NotContains(t, body, "this is a test error")
	})
}

func TestLoginFlow(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	t.Run("dashboard requires login", func(t *testing.T) {
		resp, _ := get(t, client, srv.URL+"/dashboard")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("invalid credentials re-render the form", func(t *testing.T) {
		resp, body := postForm(t, client, srv.URL+"/login", url.Values{
			"email":    {"dean@example.edu"},
			"password": {"wrong"},
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Invalid email or password.")
	})

	get(t, client, srv.URL+"/")
	before := sessionCookie(t, client, srv.URL)
	require.NotEmpty(t, before)

	t.Run("valid credentials rotate the token and redirect", func(t *testing.T) {
		resp, _ := postForm(t, client, srv.URL+"/login", url.Values{
			"email":    {"dean@example.edu"},
			"password": {"correct horse"},
		})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
		assert.NotEqual(t, before, sessionCookie(t, client, srv.URL))
	})

	t.Run("dashboard renders for the authenticated user", func(t *testing.T) {
		resp, body := get(t, client, srv.URL+"/dashboard")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "signed in as user")
	})

	t.Run("logout returns the visitor to anonymous", func(t *testing.T) {
		resp, _ := get(t, client, srv.URL+"/logout")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp, _ = get(t, client, srv.URL+"/dashboard")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})
}

func TestRegistration(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	t.Run("mismatched passwords rejected", func(t *testing.T) {
		resp, body := postForm(t, client, srv.URL+"/register", url.Values{
			"email":    {"new@example.edu"},
			"password": {"long enough"},
			"confirm":  {"different one"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "Passwords do not match.")
	})

	t.Run("successful registration then login", func(t *testing.T) {
		resp, body := postForm(t, client, srv.URL+"/register", url.Values{
			"email":    {"new@example.edu"},
			"password": {"long enough"},
			"confirm":  {"long enough"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "account has been created")

		resp, _ = postForm(t, client, srv.URL+"/login", url.Values{
			"email":    {"new@example.edu"},
			"password": {"long enough"},
		})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		resp, body := postForm(t, client, srv.URL+"/register", url.Values{
			"email":    {"new@example.edu"},
			"password": {"long enough"},
			"confirm":  {"long enough"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "already exists")
	})
}

func TestContactForm(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	t.Run("missing fields re-render with errors", func(t *testing.T) {
		resp, body := postForm(t, client, srv.URL+"/contact", url.Values{
			"name": {"Sam"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "valid email address is required")
		assert.Contains(t, body, "Message cannot be empty")
		assert.Contains(t, body, `value="Sam"`, "submitted values survive the round trip")
	})

	t.Run("valid submission confirms", func(t *testing.T) {
		resp, body := postForm(t, client, srv.URL+"/contact", url.Values{
			"name":    {"Sam"},
			"email":   {"sam@example.edu"},
			"message": {"When does registration open?"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "your message has been sent")
	})
}

// brokenStore fails every operation, standing in for an unreachable
// backend.
type brokenStore struct{}

func (brokenStore) Create(context.Context, *session.Session) error {
	return errors.Join(session.ErrStoreUnavailable, errors.New("dial refused"))
}

func (brokenStore) Get(context.Context, string) (*session.Session, error) {
	return nil, errors.Join(session.ErrStoreUnavailable, errors.New("dial refused"))
}

func (brokenStore) Update(context.Context, *session.Session) error {
	return errors.Join(session.ErrStoreUnavailable, errors.New("dial refused"))
}

func (brokenStore) Touch(context.Context, string, time.Time) error {
	return errors.Join(session.ErrStoreUnavailable, errors.New("dial refused"))
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.Join(session.ErrStoreUnavailable, errors.New("dial refused"))
}

func (brokenStore) DeleteExpired(context.Context) (int64, error) {
	return 0, errors.Join(session.ErrStoreUnavailable, errors.New("dial refused"))
}

func TestStoreOutageDegradesToAnonymous(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{store: brokenStore{}})

	t.Run("public pages still render", func(t *testing.T) {
		resp, body := get(t, client, srv.URL+"/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Welcome to Campus College")
		assert.Empty(t, sessionCookie(t, client, srv.URL), "no cookie for a transient session")
	})

	t.Run("guarded routes treat the visitor as anonymous", func(t *testing.T) {
		resp, _ := get(t, client, srv.URL+"/dashboard")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})
}

func TestThemeClassOnEveryPage(t *testing.T) {
	srv, client := newTestServer(t, siteOptions{})

	_, body := get(t, client, srv.URL+"/")
	found := false
	for _, theme := range []string{"blue-theme", "green-theme", "red-theme"} {
		if strings.Contains(body, `class="`+theme+`"`) {
			found = true
		}
	}
	assert.True(t, found, "page must carry one of the fixed theme classes")
}
