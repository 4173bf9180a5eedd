package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"blogger-web/internal/auth"
	"blogger-web/internal/session"
)

type sessionContextKey struct{}

type sessionBinding struct {
	store      session.Store
	controller *auth.Controller
}

type SessionOptions struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// SessionMiddleware binds every request to the token store of its browser
// session and restores an auth controller over it. Browsers without a
// session cookie are issued one.
type SessionMiddleware struct {
	backend session.Backend
	opts    SessionOptions
}

func NewSessionMiddleware(backend session.Backend, opts SessionOptions) *SessionMiddleware {
	if opts.CookieName == "" {
		opts.CookieName = "blogger_sid"
	}
	return &SessionMiddleware{backend: backend, opts: opts}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := m.sessionID(w, r)

		store := session.Scoped(m.backend, session.ScopeFor(sid))
		controller := auth.NewController(store)
		controller.Restore(r.Context())

		ctx := context.WithValue(r.Context(), sessionContextKey{}, &sessionBinding{
			store:      store,
			controller: controller,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(m.opts.CookieName); err == nil {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			return cookie.Value
		}
	}

	sid := uuid.NewString()
	cookie := &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.opts.TTL > 0 {
		cookie.MaxAge = int(m.opts.TTL / time.Second)
	}
	http.SetCookie(w, cookie)
	return sid
}

// ControllerFromContext returns the auth controller bound by
// SessionMiddleware. Outside a bound request it returns a resolved
// anonymous controller.
func ControllerFromContext(ctx context.Context) *auth.Controller {
	if binding, ok := ctx.Value(sessionContextKey{}).(*sessionBinding); ok {
		return binding.controller
	}
	controller := auth.NewController(noStore{})
	controller.Restore(ctx)
	return controller
}

// StoreFromContext returns the token store of the request's session.
func StoreFromContext(ctx context.Context) session.Store {
	if binding, ok := ctx.Value(sessionContextKey{}).(*sessionBinding); ok {
		return binding.store
	}
	return noStore{}
}

type noStore struct{}

func (noStore) Get(context.Context) (string, bool) { return "", false }

func (noStore) Set(context.Context, string) error { return session.ErrClosed }

func (noStore) Clear(context.Context) error { return nil }
