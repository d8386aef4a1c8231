package offline

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultTTL is applied when a caller stores a value without one.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	data      any
	timestamp time.Time
	ttl       time.Duration
}

func (e cacheEntry) expired(now time.Time) bool {
	return now.Sub(e.timestamp) > e.ttl
}

// CacheStats describes the cache contents for observability endpoints.
// None of the fields participate in correctness decisions.
type CacheStats struct {
	Entries     int       `json:"entries"`
	ApproxBytes int       `json:"approx_bytes"`
	Oldest      time.Time `json:"oldest,omitempty"`
	Newest      time.Time `json:"newest,omitempty"`
}

// ResultCache stores the last known good value per resource key with
// an independent TTL per entry. It is the read-through source while
// the backend is unreachable, so it is deliberately in-memory: it must
// keep working when every external dependency is down.
//
// Values are returned as stored, without cloning. Callers must treat
// them as read-only.
type ResultCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	defaultTTL time.Duration
}

// NewResultCache creates a cache with the given default TTL.
func NewResultCache(defaultTTL time.Duration) *ResultCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &ResultCache{
		entries:    make(map[string]cacheEntry),
		defaultTTL: defaultTTL,
	}
}

// Store inserts or overwrites the entry for key. A non-positive ttl
// selects the default.
func (c *ResultCache) Store(key string, data any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		data:      data,
		timestamp: time.Now(),
		ttl:       ttl,
	}
}

// Read returns the stored value for key. An entry past its TTL is
// removed and treated as absent.
func (c *ResultCache) Read(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if entry.expired(time.Now()) {
		delete(c.entries, key)
		return nil, false
	}

	return entry.data, true
}

// Cleanup sweeps all expired entries and returns how many were removed.
func (c *ResultCache) Cleanup() int {
	now := time.Now()
	removed := 0

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// Clear drops every entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Stats reports entry count, approximate serialized size, and the
// oldest and newest entry timestamps.
func (c *ResultCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{Entries: len(c.entries)}
	for _, entry := range c.entries {
		if data, err := json.Marshal(entry.data); err == nil {
			stats.ApproxBytes += len(data)
		}
		if stats.Oldest.IsZero() || entry.timestamp.Before(stats.Oldest) {
			stats.Oldest = entry.timestamp
		}
		if entry.timestamp.After(stats.Newest) {
			stats.Newest = entry.timestamp
		}
	}
	return stats
}
