package pool

import (
	"sync"
	"time"

	"keypool-go/internal/monitoring"
)

// usageRecord is one reported call inside the rolling window.
type usageRecord struct {
	at     time.Time
	failed bool
}

// keyHealth is the mutable per-credential history. Window records feed the
// error rate and cooldown decisions; the lifetime totals feed Stats and are
// never pruned.
type keyHealth struct {
	records      []usageRecord
	windowErrors int

	totalRequests int64
	totalErrors   int64
	totalLatency  time.Duration
	lastError     string

	disabledUntil time.Time
}

// healthTracker maintains rolling outcome history and derives availability.
// A single mutex protects all state; with at most a handful of credentials
// the critical sections are tiny and easy to audit.
type healthTracker struct {
	mu   sync.Mutex
	keys map[string]*keyHealth

	window     time.Duration
	cooldown   time.Duration
	minSamples int
	threshold  float64

	now func() time.Time
}

func newHealthTracker(window, cooldown time.Duration, minSamples int, threshold float64) *healthTracker {
	return &healthTracker{
		keys:       make(map[string]*keyHealth),
		window:     window,
		cooldown:   cooldown,
		minSamples: minSamples,
		threshold:  threshold,
		now:        time.Now,
	}
}

// record appends a usage record, prunes expired history, and marks the
// credential degraded when the windowed error rate crosses the threshold
// over at least minSamples observations.
func (t *healthTracker) record(id string, outcome Outcome, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	h := t.keys[id]
	if h == nil {
		h = &keyHealth{}
		t.keys[id] = h
	}

	failed := outcome.failed()
	h.records = append(h.records, usageRecord{at: now, failed: failed})
	if failed {
		h.windowErrors++
		h.totalErrors++
		h.lastError = string(outcome)
	}
	h.totalRequests++
	h.totalLatency += latency
	t.pruneLocked(h, now)

	if len(h.records) >= t.minSamples {
		rate := float64(h.windowErrors) / float64(len(h.records))
		if rate >= t.threshold {
			h.disabledUntil = now.Add(t.cooldown)
			monitoring.DegradationsTotal.WithLabelValues(id).Inc()
		}
	}
}

// errorRate returns errors/total over the live window. A credential with no
// recorded usage is healthy by definition and reports 0.
func (t *healthTracker) errorRate(id string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.keys[id]
	if h == nil {
		return 0
	}
	t.pruneLocked(h, t.now())
	if len(h.records) == 0 {
		return 0
	}
	return float64(h.windowErrors) / float64(len(h.records))
}

// isAvailable reports whether the credential is outside cooldown. An expired
// cooldown is cleared here, on read; there is no background sweep.
func (t *healthTracker) isAvailable(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.keys[id]
	if h == nil || h.disabledUntil.IsZero() {
		return true
	}
	if t.now().Before(h.disabledUntil) {
		return false
	}
	h.disabledUntil = time.Time{}
	return true
}

// pruneLocked drops records older than the window horizon. Records arrive in
// time order, so the expired prefix can be cut in one slice operation.
func (t *healthTracker) pruneLocked(h *keyHealth, now time.Time) {
	horizon := now.Add(-t.window)
	cut := 0
	for cut < len(h.records) && h.records[cut].at.Before(horizon) {
		if h.records[cut].failed {
			h.windowErrors--
		}
		cut++
	}
	if cut > 0 {
		h.records = h.records[cut:]
	}
}
