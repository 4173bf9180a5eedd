package handler

import (
	"context"
	"log/slog"
	"net/http"

	"blogger-web/internal/view"
)

// HealthCheck probes one dependency of the process.
type HealthCheck func(ctx context.Context) error

// SiteHandler serves the info page, the error pages and the liveness probe.
type SiteHandler struct {
	base
	checks []HealthCheck
}

func NewSiteHandler(deps Deps, checks ...HealthCheck) *SiteHandler {
	return &SiteHandler{base: base{deps}, checks: checks}
}

func (h *SiteHandler) Health(w http.ResponseWriter, r *http.Request) {
	for _, check := range h.checks {
		if err := check(r.Context()); err != nil {
			slog.Warn("health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *SiteHandler) Info(w http.ResponseWriter, r *http.Request) {
	controller := h.controller(r)

	status := "status.anonymous"
	switch {
	case controller.IsAdmin():
		status = "status.admin"
	case controller.IsAuthenticated():
		status = "status.user"
	}

	h.render(w, http.StatusOK, "info", h.page(w, r, "info.title", view.Info{Status: status}))
}

func (h *SiteHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "error.not_found")
}

func (h *SiteHandler) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusForbidden, "error.forbidden")
}

func (h *SiteHandler) Internal(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusInternalServerError, "error.internal")
}
