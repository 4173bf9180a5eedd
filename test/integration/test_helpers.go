//go:build integration

package integration

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"blogger-web/internal/app"
	"blogger-web/internal/config"
	"blogger-web/internal/model"
)

// newStubBackend answers the handful of backend routes the tests touch.
// Credentials: alice/secret1 and admin/qwerty.
func newStubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	tokens := map[string]string{
		"alice": stubToken("u1", "alice"),
		"admin": stubToken("u0", "admin"),
	}
	passwords := map[string]string{"alice": "secret1", "admin": "qwerty"}

	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var in model.LoginInput
		_ = json.NewDecoder(req.Body).Decode(&in)
		if passwords[in.LoginOrEmail] == "" || passwords[in.LoginOrEmail] != in.Password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, model.LoginResult{AccessToken: tokens[in.LoginOrEmail]})
	})
	r.Post("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/blogs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.Page[model.Blog]{
			Items:      []model.Blog{{ID: "b1", Name: "stub blog", Description: "seeded", WebsiteURL: "https://stub.example.com", CreatedAt: time.Now()}},
			TotalCount: 1,
			Page:       1,
			PageSize:   10,
			PagesCount: 1,
		})
	})
	r.Post("/blogs", func(w http.ResponseWriter, req *http.Request) {
		if user, pass, ok := req.BasicAuth(); !ok || user != "admin" || pass != "qwerty" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in model.BlogInput
		_ = json.NewDecoder(req.Body).Decode(&in)
		writeJSON(w, http.StatusCreated, model.Blog{ID: "b2", Name: in.Name, Description: in.Description, WebsiteURL: in.WebsiteURL})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func stubToken(userID string, login string) string {
	payload, _ := json.Marshal(map[string]string{"userId": userID, "userLogin": login})
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(payload) + ".stub"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newConfig loads configuration from the environment the way the binary
// does, with state kept under dir.
func newConfig(t *testing.T, backendURL string, dir string) *config.Config {
	t.Helper()

	t.Setenv("BACKEND_BASE_URL", backendURL)
	t.Setenv("SESSION_BACKEND", config.SessionBackendFile)
	t.Setenv("SESSION_FILE", filepath.Join(dir, "sessions.json"))
	t.Setenv("AUDIT_LOG_FILE", filepath.Join(dir, "audit.log"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RATE_LIMIT_RPM", "1000")
	t.Setenv("AUTH_RATE_LIMIT_RPM", "1000")
	t.Setenv("UI_LOCALE", "en")

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func newServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	a, err := app.New(cfg)
	require.NoError(t, err)
	server := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		server.Close()
		a.Close()
	})
	return server
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func doRequest(t *testing.T, client *http.Client, method string, target string, form url.Values) (*http.Response, string) {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}
