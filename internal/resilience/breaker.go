package resilience

import (
	"sync"
	"time"
)

// BreakerState is the circuit state for one operation.
type BreakerState string

const (
	// BreakerClosed allows calls through normally.
	BreakerClosed BreakerState = "closed"

	// BreakerOpen short-circuits calls until the cool-down elapses.
	BreakerOpen BreakerState = "open"

	// BreakerHalfOpen permits exactly one trial call.
	BreakerHalfOpen BreakerState = "half-open"
)

const (
	// DefaultFailureThreshold opens the breaker after this many
	// cumulative failures for one operation.
	DefaultFailureThreshold = 3

	// DefaultCooldown is how long an open breaker refuses calls
	// before permitting a half-open trial.
	DefaultCooldown = 30 * time.Second
)

type breakerEntry struct {
	failureCount    int
	lastFailureTime time.Time
	state           BreakerState
}

// BreakerRegistry tracks a circuit breaker per operation name.
// Entries are created lazily on first failure and deleted on success.
type BreakerRegistry struct {
	mu        sync.Mutex
	entries   map[string]*breakerEntry
	threshold int
	cooldown  time.Duration
}

// NewBreakerRegistry creates a registry. Non-positive arguments select
// the defaults.
func NewBreakerRegistry(threshold int, cooldown time.Duration) *BreakerRegistry {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &BreakerRegistry{
		entries:   make(map[string]*breakerEntry),
		threshold: threshold,
		cooldown:  cooldown,
	}
}

// Allow reports whether a call for operation may proceed. An open
// breaker whose cool-down has elapsed transitions to half-open and
// admits the single trial call.
func (r *BreakerRegistry) Allow(operation string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[operation]
	if !ok || entry.state == BreakerClosed {
		return true
	}

	if entry.state == BreakerHalfOpen {
		return true
	}

	if time.Since(entry.lastFailureTime) >= r.cooldown {
		entry.state = BreakerHalfOpen
		return true
	}

	return false
}

// RecordFailure counts a failed call. The breaker opens once the
// cumulative failure count reaches the threshold, and a failed
// half-open trial re-opens it immediately.
func (r *BreakerRegistry) RecordFailure(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[operation]
	if !ok {
		entry = &breakerEntry{state: BreakerClosed}
		r.entries[operation] = entry
	}

	entry.failureCount++
	entry.lastFailureTime = time.Now()

	if entry.state == BreakerHalfOpen || entry.failureCount >= r.threshold {
		entry.state = BreakerOpen
	}
}

// RecordSuccess resets the breaker for operation by deleting its state.
func (r *BreakerRegistry) RecordSuccess(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, operation)
}

// State returns the current state for operation.
func (r *BreakerRegistry) State(operation string) BreakerState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[operation]; ok {
		return entry.state
	}
	return BreakerClosed
}

// FailureCount returns the cumulative failure count for operation.
func (r *BreakerRegistry) FailureCount(operation string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[operation]; ok {
		return entry.failureCount
	}
	return 0
}
