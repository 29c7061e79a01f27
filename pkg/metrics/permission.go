package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Permission resolution and distribution metrics
var (
	ResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "permission",
			Name:      "resolve_total",
			Help:      "Total number of permission resolutions by resulting role.",
		},
		[]string{"role"},
	)

	ResolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "compass",
			Subsystem: "permission",
			Name:      "resolve_duration_seconds",
			Help:      "Permission resolution latency.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	ResolveFailClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "permission",
			Name:      "resolve_fail_closed_total",
			Help:      "Resolutions degraded to no access due to source errors.",
		},
	)

	DistributeOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "distribution",
			Name:      "outcomes_total",
			Help:      "Distribution outcomes per subject.",
		},
		[]string{"outcome"},
	)

	ProjectionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "projection",
			Name:      "transitions_total",
			Help:      "Projection status transitions.",
		},
		[]string{"from", "to"},
	)
)

// SetupPermissionMetrics registers permission metrics to the registry
func SetupPermissionMetrics(registry *prometheus.Registry) {
	registry.MustRegister(
		ResolveTotal,
		ResolveDuration,
		ResolveFailClosed,
		DistributeOutcomes,
		ProjectionTransitions,
	)
}
