// Package audit records admin mutations made through the front end.
package audit

import (
	"context"
	"log/slog"
	"time"

	"blogger-web/internal/metrics"
	"blogger-web/internal/model"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Sink persists audit entries and pages through them, newest first.
type Sink interface {
	Append(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

type Recorder struct {
	sink Sink
	now  func() time.Time
}

func NewRecorder(sink Sink) *Recorder {
	return &Recorder{sink: sink, now: time.Now}
}

// Record stores one admin action. opErr is the outcome of the action;
// recording failures are logged, never returned.
func (r *Recorder) Record(ctx context.Context, action string, actor model.AuditActor, resource string, opErr error) {
	status := StatusSuccess
	errText := ""
	if opErr != nil {
		status = StatusFailed
		errText = opErr.Error()
	}
	metrics.RecordAdminAction(action, status)

	if r == nil || r.sink == nil {
		return
	}

	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: r.now().UTC().Format(time.RFC3339Nano),
		Actor:      actor,
		Status:     status,
		Resource:   resource,
		Error:      errText,
	}
	if err := r.sink.Append(ctx, entry); err != nil {
		slog.Error("audit append failed", "action", action, "resource", resource, "error", err)
	}
}

func (r *Recorder) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	return r.sink.Query(ctx, normalizeQuery(query))
}

func normalizeQuery(query model.AuditQuery) model.AuditQuery {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}
	return query
}

func totalPages(total int, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
