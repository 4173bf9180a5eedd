// Package metrics defines Prometheus metrics for the blog front end.
//
// Metric naming follows Prometheus conventions:
//   - blogger_web_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// BackendRequestsTotal counts calls to the REST backend by resource,
	// method and response status ("error" when no response arrived).
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogger_web_backend_requests_total",
			Help: "Total number of backend requests by resource, method and status.",
		},
		[]string{"resource", "method", "status"},
	)

	// BackendRequestDurationSeconds is a histogram of backend call latency.
	BackendRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogger_web_backend_request_duration_seconds",
			Help:    "Duration of backend requests in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"resource", "method"},
	)

	// SessionRestoresTotal counts session restores by outcome
	// (anonymous, authenticated, invalid).
	SessionRestoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogger_web_session_restores_total",
			Help: "Total number of session restores by outcome.",
		},
		[]string{"outcome"},
	)

	// AdminActionsTotal counts admin mutations by action and status.
	AdminActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogger_web_admin_actions_total",
			Help: "Total number of admin actions by action and status.",
		},
		[]string{"action", "status"},
	)
)

// Registry holds every metric above; it is served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		BackendRequestsTotal,
		BackendRequestDurationSeconds,
		SessionRestoresTotal,
		AdminActionsTotal,
		collectors.NewGoCollector(),
	)
}

// RecordBackendRequest records one finished backend call. status is 0 when
// the request failed before a response arrived.
func RecordBackendRequest(resource, method string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	BackendRequestsTotal.WithLabelValues(resource, method, label).Inc()
	BackendRequestDurationSeconds.WithLabelValues(resource, method).Observe(duration.Seconds())
}

// RecordSessionRestore records the outcome of one session restore.
func RecordSessionRestore(outcome string) {
	SessionRestoresTotal.WithLabelValues(outcome).Inc()
}

// RecordAdminAction records a single admin mutation.
func RecordAdminAction(action, status string) {
	AdminActionsTotal.WithLabelValues(action, status).Inc()
}
