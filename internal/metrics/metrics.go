// Package metrics defines the Prometheus collectors for the rating service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rating ledger metrics
var (
	// RatingsSubmitted tracks rating upserts by dimension
	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Total rating upserts by dimension",
		},
		[]string{"dimension"},
	)

	// RatingsRemoved tracks rating deletions by dimension
	RatingsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_removed_total",
			Help: "Total rating deletions by dimension",
		},
		[]string{"dimension"},
	)
)

// Leaderboard metrics
var (
	// LeaderboardDuration tracks the full-catalog ranking pass latency
	LeaderboardDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leaderboard_computation_seconds",
			Help:    "Duration of the full-catalog leaderboard pass",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)
)

// Catalog metrics
var (
	// CatalogWords tracks the current number of catalog entries
	CatalogWords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_words",
			Help: "Current number of words in the catalog",
		},
	)
)
