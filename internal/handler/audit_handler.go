package handler

import (
	"net/http"
	"net/url"
	"strings"

	"blogger-web/internal/audit"
	"blogger-web/internal/model"
	"blogger-web/internal/view"
)

type AuditHandler struct {
	base
	recorder *audit.Recorder
}

func NewAuditHandler(deps Deps, recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{base: base{deps}, recorder: recorder}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageReq := h.pageRequest(r)

	query := model.AuditQuery{
		Action: strings.TrimSpace(q.Get("action")),
		Status: strings.TrimSpace(q.Get("status")),
		Page:   pageReq.PageNumber,
		Limit:  pageReq.PageSize,
	}
	data := view.AuditList{Query: query}

	entries, meta, err := h.recorder.Query(r.Context(), query)
	if err != nil {
		h.renderFailure(w, r, "audit", "audit.title", data, err)
		return
	}

	data.Entries = entries
	data.Pager = view.Pager{
		Path:       "/audit",
		Query:      filterQuery(query),
		Page:       meta.Page,
		PageSize:   meta.Limit,
		PagesCount: meta.TotalPages,
		TotalCount: meta.Total,
	}
	h.render(w, http.StatusOK, "audit", h.page(w, r, "audit.title", data))
}

func filterQuery(query model.AuditQuery) url.Values {
	values := url.Values{}
	if query.Action != "" {
		values.Set("action", query.Action)
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	return values
}
