package nlu

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ledgerai",
	Name:      "nlu_fallbacks_total",
	Help:      "Messages resolved by the deterministic fallback extractor.",
})
