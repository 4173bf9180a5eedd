package handler_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blogger-web/internal/audit"
	"blogger-web/internal/config"
	"blogger-web/internal/gateway"
	"blogger-web/internal/handler"
	"blogger-web/internal/middleware"
	"blogger-web/internal/router"
	"blogger-web/internal/session"
	"blogger-web/internal/view"
)

type site struct {
	t       *testing.T
	backend *fakeBackend
	server  *httptest.Server
}

// newSite wires the full page stack against an in-memory backend.
func newSite(t *testing.T) *site {
	t.Helper()

	backend := newFakeBackend()
	api := httptest.NewServer(backend.Handler())
	t.Cleanup(api.Close)

	client, err := gateway.New(gateway.Config{
		BaseURL:       api.URL,
		Timeout:       5 * time.Second,
		AdminUsername: "admin",
		AdminPassword: "qwerty",
	})
	require.NoError(t, err)

	views, err := view.New("en")
	require.NoError(t, err)

	sink, err := audit.NewFileSink(filepath.Join(t.TempDir(), "audit.log"))
	require.NoError(t, err)
	recorder := audit.NewRecorder(sink)

	cfg := &config.Config{
		RequestTimeout:   5 * time.Second,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
		DefaultPageSize:  10,
	}
	deps := handler.Deps{Gateway: client, Views: views, PageSize: cfg.DefaultPageSize}
	sessions := middleware.NewSessionMiddleware(session.NewMemoryBackend(time.Hour), middleware.SessionOptions{TTL: time.Hour})

	h := router.New(cfg, sessions, router.Handlers{
		Site:    handler.NewSiteHandler(deps),
		Auth:    handler.NewAuthHandler(deps),
		Blog:    handler.NewBlogHandler(deps, recorder),
		Post:    handler.NewPostHandler(deps, recorder),
		Comment: handler.NewCommentHandler(deps, recorder),
		User:    handler.NewUserHandler(deps, recorder),
		Audit:   handler.NewAuditHandler(deps, recorder),
	})
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	return &site{t: t, backend: backend, server: server}
}

// browser is one visitor with its own cookie jar. Redirects are not
// followed so tests can assert on them.
type browser struct {
	site   *site
	client *http.Client
}

func (s *site) browser() *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(s.t, err)
	return &browser{site: s, client: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.site.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.site.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.site.t, err)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.site.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.site.server.URL+path, nil)
	require.NoError(b.site.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.site.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.site.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(b.site.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// follow posts a form and loads the page it redirects to.
func (b *browser) follow(path string, form url.Values) (string, int, string) {
	b.site.t.Helper()
	resp, _ := b.post(path, form)
	require.Equal(b.site.t, http.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	next, body := b.get(location)
	return location, next.StatusCode, body
}

func (b *browser) login(loginOrEmail string, password string) {
	b.site.t.Helper()
	resp, _ := b.post("/login", url.Values{"loginOrEmail": {loginOrEmail}, "password": {password}})
	require.Equal(b.site.t, http.StatusSeeOther, resp.StatusCode)
}

func (s *site) admin() *browser {
	b := s.browser()
	b.login("admin", "qwerty")
	return b
}
