// Package metrics defines the Prometheus collectors for the verification
// pipeline and the HTTP surface. Collectors are registered once via promauto
// and shared process-wide.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "risksure",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "handler", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "risksure",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~32s
		},
		[]string{"method", "handler"},
	)

	// Verification pipeline metrics
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "risksure",
			Subsystem: "verification",
			Name:      "verdicts_total",
			Help:      "Verification verdicts by final status",
		},
		[]string{"status"},
	)

	VerificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "risksure",
			Subsystem: "verification",
			Name:      "evaluation_duration_seconds",
			Help:      "End-to-end evaluation latency including store reads",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16), // 100μs to ~6.5s
		},
	)

	FraudRiskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "risksure",
			Subsystem: "fraud",
			Name:      "risk_score",
			Help:      "Distribution of aggregate fraud risk scores",
			Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0 to 100
		},
	)

	FraudBlockedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "risksure",
			Subsystem: "fraud",
			Name:      "blocked_total",
			Help:      "Submissions blocked by the fraud engine",
		},
	)

	DeficienciesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "risksure",
			Subsystem: "compliance",
			Name:      "deficiencies_total",
			Help:      "Coverage deficiencies found, by severity",
		},
		[]string{"severity"},
	)

	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "risksure",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache lookups by outcome",
		},
		[]string{"cache", "outcome"},
	)
)

// Handler returns the metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveVerdict records the outcome counters for one completed evaluation.
func ObserveVerdict(status string, fraudScore int, blocked bool, elapsed time.Duration) {
	VerificationsTotal.WithLabelValues(status).Inc()
	VerificationDuration.Observe(elapsed.Seconds())
	FraudRiskScore.Observe(float64(fraudScore))
	if blocked {
		FraudBlockedTotal.Inc()
	}
}
