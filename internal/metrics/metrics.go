// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internhub_state_transitions_total",
			Help: "Workflow state transitions by entity and target status",
		},
		[]string{"entity", "to"},
	)

	StatsIncrementFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internhub_stats_increment_failures_total",
			Help: "Derived counter increments that failed and were skipped",
		},
		[]string{"counter"},
	)

	DiscoveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "internhub_discovery_duration_seconds",
			Help:    "Time spent filtering and ranking the candidate pool",
			Buckets: prometheus.DefBuckets,
		},
	)

	DiscoveryPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "internhub_discovery_pool_size",
			Help: "Number of visible candidates scanned by the last discovery request",
		},
	)

	ResumeAccesses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internhub_resume_accesses_total",
			Help: "Resume access attempts by partners",
		},
		[]string{"granted"},
	)

	CandidateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internhub_candidate_cache_lookups_total",
			Help: "Candidate pool cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internhub_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "internhub_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internhub_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

// RecordTransition counts one workflow state change.
func RecordTransition(entity, to string) {
	StateTransitions.WithLabelValues(entity, to).Inc()
}
