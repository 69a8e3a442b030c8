// Package pool implements a credential rotation pool for workers calling a
// rate-limited upstream API. Many goroutines share one Pool: each calls
// Select to obtain a credential, performs its own HTTP call, and calls
// Report with the outcome. The pool performs no I/O, never blocks, and is
// safe for any number of concurrent callers.
package pool

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"keypool-go/internal/credential"
	"keypool-go/internal/monitoring"
)

// Pool hands out credentials and absorbs outcome reports. State is
// process-local and rebuilt fresh on every start.
type Pool struct {
	store    *credential.Store
	strategy Strategy
	creds    []credential.Credential
	rot      rotator
	tracker  *healthTracker
}

// New builds a pool from raw secrets. It fails with ErrNoCredentials when
// filtering leaves nothing usable.
func New(secrets []string, opts ...Option) (*Pool, error) {
	store, err := credential.NewStore(secrets)
	if err != nil {
		return nil, err
	}
	return NewFromStore(store, opts...)
}

// NewFromStore builds a pool over an existing store, typically assembled
// from credential sources. A store with no active credentials yields a valid
// but permanently exhausted pool: Select returns ErrPoolExhausted.
func NewFromStore(store *credential.Store, opts ...Option) (*Pool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pool{
		store:    store,
		strategy: o.strategy,
		creds:    store.Active(),
	}
	p.tracker = newHealthTracker(o.window, o.cooldown, o.minSamples, o.threshold)
	p.tracker.now = o.now

	if len(p.creds) > 0 {
		base := newRotator(o.strategy, p.creds)
		if o.strategy == StrategyAdaptive {
			sel := &adaptiveSelector{base: base, tracker: p.tracker, creds: p.creds}
			if o.keyRate > 0 {
				sel.pacers = make(map[string]*rate.Limiter, len(p.creds))
				for _, c := range p.creds {
					sel.pacers[c.ID] = rate.NewLimiter(rate.Limit(o.keyRate), o.keyBurst)
				}
			}
			p.rot = sel
		} else {
			p.rot = base
		}
	}

	log.Infof("Initialized credential pool with %d key(s) using %q strategy", len(p.creds), o.strategy)
	return p, nil
}

// Strategy returns the strategy fixed at construction.
func (p *Pool) Strategy() Strategy {
	return p.strategy
}

// Count returns the number of credentials in rotation.
func (p *Pool) Count() int {
	return len(p.creds)
}

// Select returns the next credential to use. It never blocks and errors only
// when the pool holds no credentials at all; an unhealthy-looking pool still
// serves its least-bad key.
func (p *Pool) Select() (credential.Credential, error) {
	if len(p.creds) == 0 {
		return credential.Credential{}, ErrPoolExhausted
	}
	c := p.rot.next()
	monitoring.SelectsTotal.WithLabelValues(p.strategy.String()).Inc()
	return c, nil
}

// Report records the outcome of one upstream call made with the credential.
// Unknown outcome labels are folded into OutcomeError, reports for unknown
// credential IDs are dropped, and reporting never fails: bookkeeping must
// not interrupt the workload.
func (p *Pool) Report(id string, outcome Outcome, latency time.Duration) {
	if _, ok := p.store.Get(id); !ok {
		return
	}
	outcome = outcome.normalize()
	p.tracker.record(id, outcome, latency)
	monitoring.ReportsTotal.WithLabelValues(id, string(outcome)).Inc()
}

// Stats returns a read-only snapshot of per-credential usage, in the
// store's original order. Counts are lifetime totals; the error rate and
// degraded flag reflect current state.
func (p *Pool) Stats() []CredentialStat {
	return p.tracker.snapshot(p.store.List())
}
