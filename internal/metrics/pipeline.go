package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Retrieval pipeline and LLM Prometheus metrics.
var (
	RetrievalRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genie",
			Name:      "retrieval_records_total",
			Help:      "Records retrieved per pipeline phase",
		},
		[]string{"phase"}, // "fast_track" / "planned" / "crisis"
	)

	PlannerFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "genie",
			Name:      "planner_failures_total",
			Help:      "Search plan generations recovered by the degenerate plan",
		},
	)

	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genie",
			Name:      "fallback_total",
			Help:      "Empty-retrieval fallbacks by terminal tier",
		},
		[]string{"tier"}, // "overview" / "apology"
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genie",
			Name:      "llm_requests_total",
			Help:      "Total LLM chat requests",
		},
		[]string{"kind", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genie",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM chat request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)
)

// ObserveLLMRequest records one LLM call outcome.
func ObserveLLMRequest(kind string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	LLMRequestsTotal.WithLabelValues(kind, status).Inc()
	LLMRequestDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalRecordsTotal)
	prometheus.MustRegister(PlannerFailuresTotal)
	prometheus.MustRegister(FallbackTotal)
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	pipelineMetricsRegistered = true
}
