package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerai",
		Name:      "turns_total",
		Help:      "Dialogue turns handled, labelled by endpoint.",
	}, []string{"endpoint"})

	turnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgerai",
		Name:      "turn_duration_seconds",
		Help:      "Wall time to resolve one dialogue turn.",
		Buckets:   prometheus.DefBuckets,
	})

	pendingTurns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgerai",
		Name:      "turns_with_pending_confirmation_total",
		Help:      "Turns whose reply carries a pending confirmation, re-prompts included.",
	})
)
