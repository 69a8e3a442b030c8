package pool

import (
	"time"
)

const (
	defaultWindow     = time.Hour
	defaultCooldown   = time.Hour
	defaultMinSamples = 5
	defaultThreshold  = 0.5
)

type options struct {
	strategy   Strategy
	window     time.Duration
	cooldown   time.Duration
	minSamples int
	threshold  float64
	keyRate    float64
	keyBurst   int
	now        func() time.Time
}

// Option configures a Pool at construction time.
type Option func(*options)

func defaultOptions() options {
	return options{
		strategy:   StrategyRoundRobin,
		window:     defaultWindow,
		cooldown:   defaultCooldown,
		minSamples: defaultMinSamples,
		threshold:  defaultThreshold,
		now:        time.Now,
	}
}

// WithStrategy sets the rotation strategy. Fixed for the pool lifetime.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithWindow sets the rolling horizon over which outcomes count toward the
// error rate. Non-positive values keep the default of one hour.
func WithWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithCooldown sets how long a degraded credential is excluded from
// selection. Non-positive values keep the default of one hour.
func WithCooldown(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cooldown = d
		}
	}
}

// WithMinSamples sets the minimum number of windowed observations before a
// credential may be marked degraded, so a single early failure cannot bench
// a key.
func WithMinSamples(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minSamples = n
		}
	}
}

// WithErrorThreshold sets the windowed error rate at or above which a
// credential enters cooldown. Values outside (0, 1] keep the default.
func WithErrorThreshold(rate float64) Option {
	return func(o *options) {
		if rate > 0 && rate <= 1 {
			o.threshold = rate
		}
	}
}

// WithKeyRate enables per-credential pacing for the adaptive strategy: a key
// whose token bucket is empty is passed over for that selection. rps is
// sustained requests per second, burst the bucket size. Pacing never blocks
// and is ignored by the degraded-pool fallback.
func WithKeyRate(rps float64, burst int) Option {
	return func(o *options) {
		if rps > 0 && burst > 0 {
			o.keyRate = rps
			o.keyBurst = burst
		}
	}
}

// withClock overrides the time source. Test hook.
func withClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}
