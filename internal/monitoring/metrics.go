package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SelectsTotal counts credential selections by strategy.
	SelectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keypool_selects_total",
			Help: "Total number of credential selections",
		},
		[]string{"strategy"},
	)

	// SelectSkipsTotal counts candidates skipped during adaptive selection.
	SelectSkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keypool_select_skips_total",
			Help: "Total number of credentials skipped during adaptive selection",
		},
		[]string{"credential", "reason"},
	)

	// ReportsTotal counts outcome reports by credential and outcome.
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keypool_reports_total",
			Help: "Total number of outcome reports",
		},
		[]string{"credential", "outcome"},
	)

	// DegradationsTotal counts cooldown entries per credential.
	DegradationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keypool_degradations_total",
			Help: "Total number of times a credential entered cooldown",
		},
		[]string{"credential"},
	)

	// ExhaustedFallbacksTotal counts selections served by the best-of-the-worst
	// fallback because every credential was degraded.
	ExhaustedFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keypool_exhausted_fallbacks_total",
			Help: "Total number of selections that fell back to a degraded credential",
		},
	)
)
