package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyses_total",
			Help: "Total number of resume analyses by the path that produced them",
		},
		[]string{"source"},
	)

	scorerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_scorer_failures_total",
			Help: "External scorer failures that triggered the heuristic fallback",
		},
		[]string{"scorer", "kind"},
	)

	scorerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_scorer_duration_seconds",
			Help:    "External scorer call duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"scorer"},
	)
)
