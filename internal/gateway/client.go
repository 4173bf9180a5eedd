// Package gateway issues the REST calls of the blog backend.
//
// Two transports share one base URL: the bearer transport attaches the
// session token to every request, the admin transport attaches the fixed
// administrator credential and is used only for privileged mutations.
// Nothing is retried or cached.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blogger-web/internal/metrics"
	"blogger-web/internal/model"
	"blogger-web/pkg/apierror"
)

const (
	DefaultBaseURL   = "https://blogger-platform-pi.vercel.app"
	defaultUserAgent = "blogger-web/1.0"
	maxErrorBody     = 64 << 10
)

// TokenSource yields the bearer token of the current session, if any.
// session.Store satisfies it.
type TokenSource interface {
	Get(ctx context.Context) (string, bool)
}

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	AdminUsername string
	AdminPassword string
	UserAgent     string
	// Transport is the underlying round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
	bearer    *http.Client
	admin     *http.Client

	Auth     *AuthAPI
	Blogs    *BlogsAPI
	Posts    *PostsAPI
	Comments *CommentsAPI
	Users    *UsersAPI
}

func New(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.AdminUsername) == "" {
		return nil, errors.New("gateway: admin username required")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	c := &Client{
		baseURL:   normalized,
		userAgent: ua,
		timeout:   cfg.Timeout,
		transport: transport,
		admin: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &basicTransport{
				username: cfg.AdminUsername,
				password: cfg.AdminPassword,
				next:     transport,
			},
		},
	}
	c.bearer = c.bearerClient(nil)
	c.bindResources()

	return c, nil
}

// WithTokens returns a copy of c whose bearer transport reads tokens from src.
func (c *Client) WithTokens(src TokenSource) *Client {
	clone := *c
	clone.bearer = c.bearerClient(src)
	clone.bindResources()
	return &clone
}

func (c *Client) bearerClient(src TokenSource) *http.Client {
	return &http.Client{
		Timeout:   c.timeout,
		Transport: &bearerTransport{tokens: src, next: c.transport},
	}
}

func (c *Client) bindResources() {
	c.Auth = &AuthAPI{client: c}
	c.Blogs = &BlogsAPI{client: c}
	c.Posts = &PostsAPI{client: c}
	c.Comments = &CommentsAPI{client: c}
	c.Users = &UsersAPI{client: c}
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("gateway: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("gateway: base URL scheme must be http or https")
	}
	if u.Host == "" {
		return "", errors.New("gateway: base URL missing host")
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

type bearerTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.next.RoundTrip(req)
	}

	token, ok := t.tokens.Get(req.Context())
	if !ok {
		return t.next.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(authed)
}

type basicTransport struct {
	username string
	password string
	next     http.RoundTripper
}

func (t *basicTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authed := req.Clone(req.Context())
	authed.SetBasicAuth(t.username, t.password)
	return t.next.RoundTrip(authed)
}

type call struct {
	method  string
	path    string
	query   url.Values
	payload any
	out     any
	admin   bool
}

func (c *Client) do(ctx context.Context, in call) error {
	var body io.Reader
	if in.payload != nil {
		encoded, err := json.Marshal(in.payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", in.method, in.path, err)
		}
		body = bytes.NewReader(encoded)
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return &TransportError{Method: in.method, Path: in.path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.bearer
	if in.admin {
		httpClient = c.admin
	}

	resource := resourceOf(in.path)
	started := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		metrics.RecordBackendRequest(resource, in.method, 0, time.Since(started))
		return &TransportError{Method: in.method, Path: in.path, Err: err}
	}
	defer resp.Body.Close()
	metrics.RecordBackendRequest(resource, in.method, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusUnauthorized {
			slog.Warn("backend rejected credentials", "method", in.method, "path", in.path, "admin", in.admin)
		}
		return &TransportError{
			Method: in.method,
			Path:   in.path,
			Status: resp.StatusCode,
			Err:    apierror.Parse(resp.StatusCode, data),
		}
	}

	if in.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(in.out); err != nil {
		return &TransportError{
			Method: in.method,
			Path:   in.path,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}

	return nil
}

func pageQuery(page model.PageRequest) url.Values {
	q := url.Values{}
	if page.PageNumber > 0 {
		q.Set("pageNumber", strconv.Itoa(page.PageNumber))
	}
	if page.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(page.PageSize))
	}
	return q
}

func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}

func escape(id string) string {
	return url.PathEscape(id)
}
