// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_ranking_requests_total",
			Help: "Total number of ranking requests by outcome",
		},
		[]string{"status"},
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matching_ranking_duration_seconds",
			Help: "Duration of candidate ranking in seconds",
		},
		[]string{"status"},
	)

	RankingPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_ranking_pool_size",
			Help:    "Number of candidates scored per ranking request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	OptimizeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_optimize_requests_total",
			Help: "Total number of team optimize requests by outcome",
		},
		[]string{"status"},
	)

	AssignmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_assignments_created_total",
			Help: "Total number of task assignments persisted",
		},
	)

	ReservationConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_reservation_conflicts_total",
			Help: "Workers skipped because another optimize call held their reservation",
		},
	)
)
