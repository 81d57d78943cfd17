package metrics

import "github.com/prometheus/client_golang/prometheus"

// Completion-service Prometheus metrics. The operation label names the
// pipeline stage issuing the call (keywords, summary, reasons, moderation,
// analysis).
var (
	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ondongne",
			Name:      "completion_requests_total",
			Help:      "Total number of completion-service requests",
		},
		[]string{"operation", "model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ondongne",
			Name:      "completion_request_duration_seconds",
			Help:      "Completion-service request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation", "model"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ondongne",
			Name:      "completion_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"operation", "model", "type"},
	)

	CompletionFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ondongne",
			Name:      "completion_fallbacks_total",
			Help:      "Pipeline stages that degraded to their fallback value",
		},
		[]string{"operation"},
	)
)

var completionMetricsRegistered bool

// RegisterCompletionMetrics registers completion metrics. Must be called once from main.
func RegisterCompletionMetrics() {
	if completionMetricsRegistered {
		return
	}
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(CompletionTokensTotal)
	prometheus.MustRegister(CompletionFallbacksTotal)
	completionMetricsRegistered = true
}
