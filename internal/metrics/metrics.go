package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for EscherOutcomesTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeAPIError     = "api_error"
	OutcomeDecodeError  = "decode_error"
	OutcomeNetworkError = "network_error"
)

var (
	// EscherRequestsTotal tracks the number of outbound API calls to Escher.
	EscherRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escher_api_requests_total",
			Help: "Total number of Escher API requests made (by endpoint, method, and status).",
		},
		[]string{"endpoint", "method", "status"},
	)

	// EscherRequestDuration measures the duration of outbound Escher API calls.
	EscherRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "escher_api_request_duration_seconds",
			Help:    "Duration of Escher API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"endpoint", "method"},
	)

	// EscherOutcomesTotal counts how each response was classified.
	EscherOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escher_response_outcomes_total",
			Help: "Classified Escher responses by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

// IncRequest increments the Escher API request counter.
func IncRequest(endpoint, method, status string) {
	EscherRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// IncOutcome records the classification result of one operation.
func IncOutcome(operation, outcome string) {
	EscherOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveDuration records elapsed time since start into a HistogramVec or SummaryVec.
func ObserveDuration(v any, start time.Time, labels ...string) {
	duration := time.Since(start).Seconds()
	switch metric := v.(type) {
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labels...).Observe(duration)
	case *prometheus.SummaryVec:
		metric.WithLabelValues(labels...).Observe(duration)
	}
}
