package pool

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"keypool-go/internal/credential"
)

// Strategy is the algorithm used to choose the next credential. It is
// resolved once, at construction time; the hot path never dispatches on a
// string label.
type Strategy int

const (
	StrategyRoundRobin Strategy = iota
	StrategyLeastUsed
	StrategyRandom
	StrategyAdaptive
)

func (s Strategy) String() string {
	switch s {
	case StrategyRoundRobin:
		return "round_robin"
	case StrategyLeastUsed:
		return "least_used"
	case StrategyRandom:
		return "random"
	case StrategyAdaptive:
		return "adaptive"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy resolves a configuration label into a Strategy.
func ParseStrategy(label string) (Strategy, error) {
	switch label {
	case "round_robin", "":
		return StrategyRoundRobin, nil
	case "least_used":
		return StrategyLeastUsed, nil
	case "random":
		return StrategyRandom, nil
	case "adaptive":
		return StrategyAdaptive, nil
	}
	return StrategyRoundRobin, fmt.Errorf("unknown rotation strategy %q", label)
}

// rotator picks the next candidate credential, independent of health. next
// never blocks and never performs I/O.
type rotator interface {
	next() credential.Credential
}

// roundRobinRotator cycles through credentials in order. The cursor is a
// single atomic increment, so fairness holds under any interleaving: over M
// selects each of N credentials is picked floor(M/N) or ceil(M/N) times.
type roundRobinRotator struct {
	creds  []credential.Credential
	cursor atomic.Uint64
}

func (r *roundRobinRotator) next() credential.Credential {
	n := r.cursor.Add(1) - 1
	return r.creds[n%uint64(len(r.creds))]
}

// leastUsedRotator returns the credential with the fewest selections so far.
// The minimum scan and the claim increment share one critical section so two
// concurrent selects cannot both take the same transient minimum. Ties break
// toward the earliest position in the original list.
type leastUsedRotator struct {
	mu     sync.Mutex
	creds  []credential.Credential
	counts []uint64
}

func (r *leastUsedRotator) next() credential.Credential {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := 0
	for i := 1; i < len(r.counts); i++ {
		if r.counts[i] < r.counts[best] {
			best = i
		}
	}
	r.counts[best]++
	return r.creds[best]
}

// randomRotator selects uniformly at random. The PRNG is the only shared
// state and is mutex-guarded; rand.Rand is not safe for concurrent use.
type randomRotator struct {
	mu    sync.Mutex
	creds []credential.Credential
	rng   *rand.Rand
}

func (r *randomRotator) next() credential.Credential {
	r.mu.Lock()
	idx := r.rng.Intn(len(r.creds))
	r.mu.Unlock()
	return r.creds[idx]
}

// newRotator builds the base rotator for a strategy. Adaptive selection
// wraps a round-robin base, matching the reference behavior of cycling
// through whatever keys look healthy.
func newRotator(strategy Strategy, creds []credential.Credential) rotator {
	switch strategy {
	case StrategyLeastUsed:
		return &leastUsedRotator{creds: creds, counts: make([]uint64, len(creds))}
	case StrategyRandom:
		return &randomRotator{creds: creds, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	return &roundRobinRotator{creds: creds}
}
