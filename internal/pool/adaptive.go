package pool

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"keypool-go/internal/credential"
	"keypool-go/internal/monitoring"
)

// adaptiveSelector wraps a base rotator with health-based skipping. It always
// returns a credential: when the whole pool looks degraded it serves the
// least-bad key instead of failing.
type adaptiveSelector struct {
	base    rotator
	tracker *healthTracker
	creds   []credential.Credential

	// pacers is nil unless per-key pacing was configured. Only the
	// non-blocking Allow is ever called on them.
	pacers map[string]*rate.Limiter
}

func (a *adaptiveSelector) next() credential.Credential {
	for i := 0; i < len(a.creds); i++ {
		cand := a.base.next()

		if !a.tracker.isAvailable(cand.ID) {
			log.Debugf("Skipping degraded credential %s", cand.Masked())
			monitoring.SelectSkipsTotal.WithLabelValues(cand.ID, "degraded").Inc()
			continue
		}
		if lim := a.pacers[cand.ID]; lim != nil && !lim.Allow() {
			log.Debugf("Skipping paced credential %s", cand.Masked())
			monitoring.SelectSkipsTotal.WithLabelValues(cand.ID, "paced").Inc()
			continue
		}
		return cand
	}

	// Every credential was skipped. Serve the one with the lowest current
	// error rate; ties break toward the original list order.
	best := a.creds[0]
	bestRate := a.tracker.errorRate(best.ID)
	for _, c := range a.creds[1:] {
		if r := a.tracker.errorRate(c.ID); r < bestRate {
			best, bestRate = c, r
		}
	}
	log.Warnf("All credentials degraded, using %s (error rate %.0f%%)", best.Masked(), bestRate*100)
	monitoring.ExhaustedFallbacksTotal.Inc()
	return best
}
