// Package observability provides Prometheus metrics instrumentation for the coreengine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// EXAMINE METRICS
// =============================================================================

var (
	examineTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rmi_examine_total",
			Help: "Total number of Examine calls",
		},
		[]string{"outcome"}, // outcome: published, cache_hit, malformed, error
	)

	resolveDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rmi_resolve_duration_seconds",
			Help:    "Duration of the resolve pass after a cache miss",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"interface"},
	)
)

// =============================================================================
// CACHE METRICS
// =============================================================================

var (
	cacheHitTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rmi_cache_hit_total",
			Help: "Total number of Examine calls served from the IdentityCache",
		},
		[]string{"interface"},
	)

	validateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rmi_validate_total",
			Help: "Total number of candidate interfaces fully validated (not served from cache)",
		},
		[]string{"interface"},
	)
)

// =============================================================================
// GRPC METRICS
// =============================================================================

var (
	grpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rmi_grpc_requests_total",
			Help: "Total gRPC requests against the introspection service",
		},
		[]string{"method", "status"}, // status: OK, InvalidArgument, Internal, etc.
	)

	grpcRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rmi_grpc_request_duration_seconds",
			Help:    "gRPC request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method"},
	)
)

// =============================================================================
// PUBLIC API
// =============================================================================

// RecordExamine records the outcome of one Examine call.
func RecordExamine(outcome string) {
	examineTotal.WithLabelValues(outcome).Inc()
}

// RecordResolveDuration records how long a resolve pass took for a
// newly-validated interface.
func RecordResolveDuration(interfaceName string, durationSeconds float64) {
	resolveDurationSeconds.WithLabelValues(interfaceName).Observe(durationSeconds)
}

// RecordCacheHit records an Examine call served directly from the cache.
func RecordCacheHit(interfaceName string) {
	cacheHitTotal.WithLabelValues(interfaceName).Inc()
}

// RecordValidate records a full validate-merge-resolve pass.
func RecordValidate(interfaceName string) {
	validateTotal.WithLabelValues(interfaceName).Inc()
}

// RecordGRPCRequest records gRPC request metrics.
// This should be called from gRPC interceptors.
func RecordGRPCRequest(method string, status string, durationMS int) {
	grpcRequestsTotal.WithLabelValues(method, status).Inc()
	grpcRequestDurationSeconds.WithLabelValues(method).Observe(float64(durationMS) / 1000.0)
}
