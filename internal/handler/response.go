package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blogger-web/internal/auth"
	"blogger-web/internal/form"
	"blogger-web/internal/gateway"
	"blogger-web/internal/middleware"
	"blogger-web/internal/model"
	"blogger-web/internal/view"
)

// Deps are shared by every page handler.
type Deps struct {
	Gateway  *gateway.Client
	Views    *view.Renderer
	PageSize int
}

type base struct {
	Deps
}

// api returns the gateway bound to the request's session token.
func (b base) api(r *http.Request) *gateway.Client {
	return b.Gateway.WithTokens(middleware.StoreFromContext(r.Context()))
}

func (b base) controller(r *http.Request) *auth.Controller {
	return middleware.ControllerFromContext(r.Context())
}

func (b base) page(w http.ResponseWriter, r *http.Request, title string, data any) view.Page {
	return view.Page{
		Title: title,
		Auth:  b.controller(r),
		Flash: view.PopFlash(w, r),
		Data:  data,
	}
}

func (b base) render(w http.ResponseWriter, status int, name string, page view.Page) {
	b.Views.Render(w, status, name, page)
}

// renderFailure renders a page whose backend load failed: the page keeps
// its layout and shows a notice instead of the data.
func (b base) renderFailure(w http.ResponseWriter, r *http.Request, name string, title string, data any, err error) {
	status, notice := noticeFor(err)
	page := b.page(w, r, title, data)
	page.Notice = notice
	b.render(w, status, name, page)
}

// renderInvalid re-renders a form with its field errors.
func (b base) renderInvalid(w http.ResponseWriter, r *http.Request, name string, title string, data any, errs form.Errors) {
	page := b.page(w, r, title, data)
	page.Errors = errs
	page.Notice = "notice.invalid_form"
	b.render(w, http.StatusUnprocessableEntity, name, page)
}

func (b base) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	b.render(w, status, "error", b.page(w, r, "error.title", view.ErrorPage{Status: status, Message: message}))
}

func (b base) redirect(w http.ResponseWriter, r *http.Request, to string, kind string, key string) {
	if key != "" {
		view.SetFlash(w, kind, key)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (b base) pageRequest(r *http.Request) model.PageRequest {
	q := r.URL.Query()
	return model.PageRequest{
		PageNumber: parseIntOrDefault(q.Get("pageNumber"), 1),
		PageSize:   parseIntOrDefault(q.Get("pageSize"), b.PageSize),
	}.Normalize(b.PageSize)
}

// noticeFor maps a failed call onto a response status and a message key.
func noticeFor(err error) (int, string) {
	var transportErr *gateway.TransportError
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "notice.not_found"
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, "notice.unauthorized"
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, "notice.forbidden"
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, "notice.invalid"
	case errors.As(err, &transportErr):
		if transportErr.Status == 0 {
			return http.StatusBadGateway, "notice.unavailable"
		}
		return http.StatusBadGateway, "notice.backend_failed"
	case errors.Is(err, model.ErrNoToken):
		return http.StatusBadGateway, "notice.backend_failed"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, "error.internal"
	}
}

// backendFieldErrors returns the backend's per-field rejection of a form,
// or nil when the failure was not about the submitted fields.
func backendFieldErrors(err error) form.Errors {
	fields := gateway.FieldErrors(err)
	if len(fields) == 0 {
		return nil
	}
	return form.Errors(fields)
}

func parseIntOrDefault(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}

// safeNext keeps post-login redirects on this site.
func safeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/"
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return raw
}

// link builds a site path from raw segments, escaping each one.
func link(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func resourceName(kind string, id string) string {
	if id == "" {
		return kind
	}
	return kind + "/" + id
}
