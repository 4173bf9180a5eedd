package middleware

import (
	"net/http"
	"net/url"
)

// AccessMiddleware guards routes by the session's auth state. Anonymous
// visitors are sent to the login page; authenticated users lacking the
// admin login get the forbidden handler.
type AccessMiddleware struct {
	loginPath string
	forbidden http.Handler
}

func NewAccessMiddleware(loginPath string, forbidden http.Handler) *AccessMiddleware {
	if forbidden == nil {
		forbidden = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
	return &AccessMiddleware{loginPath: loginPath, forbidden: forbidden}
}

func (m *AccessMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ControllerFromContext(r.Context()).IsAuthenticated() {
			m.redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AccessMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controller := ControllerFromContext(r.Context())
		if !controller.IsAuthenticated() {
			m.redirectToLogin(w, r)
			return
		}
		if !controller.IsAdmin() {
			m.forbidden.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AccessMiddleware) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := m.loginPath
	if r.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
