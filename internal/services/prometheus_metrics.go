package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records application metrics to the default registry
type PrometheusMetrics struct {
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	transactionWrites     *prometheus.CounterVec
	reconciliationsTotal  *prometheus.CounterVec
	spentRecomputesTotal  *prometheus.CounterVec
	authenticationsTotal  *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		transactionWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_writes_total",
				Help: "Total number of transaction writes",
			},
			[]string{"operation", "type"},
		),
		reconciliationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_reconciliations_total",
				Help: "Total number of budget spent delta applications",
			},
			[]string{"operation", "outcome"},
		),
		spentRecomputesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_spent_recomputes_total",
				Help: "Total number of budget spent cache refreshes",
			},
			[]string{"outcome"},
		),
		authenticationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "outcome"},
		),
	}
}

func (m *PrometheusMetrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordTransactionWrite(operation, transactionType string) {
	m.transactionWrites.WithLabelValues(operation, transactionType).Inc()
}

func (m *PrometheusMetrics) RecordReconciliation(operation, outcome string) {
	m.reconciliationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *PrometheusMetrics) RecordSpentRecompute(outcome string) {
	m.spentRecomputesTotal.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) RecordAuthEvent(event, outcome string) {
	m.authenticationsTotal.WithLabelValues(event, outcome).Inc()
}

// NoopMetrics discards all recordings. Used in tests and wherever metrics
// are not wired.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return &NoopMetrics{} }

func (m *NoopMetrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {}
func (m *NoopMetrics) RecordTransactionWrite(operation, transactionType string)                 {}
func (m *NoopMetrics) RecordReconciliation(operation, outcome string)                           {}
func (m *NoopMetrics) RecordSpentRecompute(outcome string)                                      {}
func (m *NoopMetrics) RecordAuthEvent(event, outcome string)                                    {}
