// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package cache provides a thread-safe in-memory TTL cache used by the
// API gateway (raw upstream payloads) and the image proxy (binary
// payloads). Expired entries are treated as absent on read; a background
// sweep bounds memory by removing them proactively.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry represents a cached item with expiration.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache provides a thread-safe in-memory cache with TTL support.
//
// Cache operations never fail: callers hold a *Cache that may be nil, in
// which case every read is a miss and writes are dropped (caching is an
// optimization, not a correctness requirement).
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	stats   Stats

	// now is the clock used for expiry checks. Replaced in tests so TTL
	// behavior is verifiable without sleeping.
	now func() time.Time

	stopSweep chan struct{}
	stopOnce  sync.Once
}

// Stats tracks cache performance counters.
//
// Hits and Misses are cumulative for the process lifetime: Clear removes
// entries but intentionally preserves them, so hit rate reporting stays
// meaningful across manual flushes.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache with the given default TTL and starts a background
// sweep goroutine on the given interval. A non-positive interval disables
// the sweeper and the cache relies on lazy expiry.
//
//	c := cache.New(time.Hour, 5*time.Minute)
//	c.Set("key", value)
//	if data, ok := c.Get("key"); ok { ... }
//
// Thread Safety: safe for concurrent use from multiple goroutines.
func New(ttl, sweepInterval time.Duration) *Cache {
	c := newCache(ttl)
	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}
	return c
}

// NewWithoutSweep creates a cache that relies on lazy expiry only.
// Intended for tests and short-lived callers.
func NewWithoutSweep(ttl time.Duration) *Cache {
	return newCache(ttl)
}

func newCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
		stats: Stats{
			LastCleanup: time.Now(),
		},
		stopSweep: make(chan struct{}),
	}
}

// Get retrieves a value from the cache by key.
//
// Returns (nil, false) if the key doesn't exist or the entry has expired;
// expired entries are removed on read. Increments the hit counter on
// successful retrieval, the miss counter otherwise.
func (c *Cache) Get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the default TTL configured at cache creation.
// Overwrites any existing entry for the key unconditionally.
func (c *Cache) Set(key string, value interface{}) {
	if c == nil {
		return
	}
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.TotalKeys = total
	c.stats.mu.Unlock()
}

// Delete removes a specific cache entry by key.
// No-op if the key doesn't exist.
func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	c.recordEviction()
}

// Clear removes all entries in a single atomic operation.
//
// Hit/miss counters are NOT reset: they are cumulative for the process
// lifetime so historical hit rate survives a manual flush. The eviction
// counter is incremented by the number of removed entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
}

// Keys returns the keys of all live (non-expired) entries.
func (c *Cache) Keys() []string {
	if c == nil {
		return nil
	}

	now := c.now()
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// Range calls fn for each live entry until fn returns false.
// The snapshot is taken under the read lock; fn runs without it, so fn
// may call back into the cache.
func (c *Cache) Range(fn func(key string, value interface{}) bool) {
	if c == nil {
		return
	}

	now := c.now()
	c.mu.RLock()
	snapshot := make(map[string]interface{}, len(c.entries))
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			continue
		}
		snapshot[key] = entry.Data
	}
	c.mu.RUnlock()

	for key, value := range snapshot {
		if !fn(key, value) {
			return
		}
	}
}

// GetStats returns a snapshot of current cache statistics.
// The returned Stats value is a copy, safe to read without locks.
func (c *Cache) GetStats() Stats {
	if c == nil {
		return Stats{}
	}

	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Stop terminates the background sweep goroutine. Safe to call more than
// once; the cache remains usable with lazy expiry only.
func (c *Cache) Stop() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() {
		close(c.stopSweep)
	})
}

// sweepLoop periodically removes expired entries.
func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopSweep:
			return
		}
	}
}

// sweep removes all expired entries.
func (c *Cache) sweep() {
	now := c.now()

	c.mu.Lock()
	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = total
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
}

// recordHit increments the hit counter.
func (c *Cache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

// recordMiss increments the miss counter.
func (c *Cache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

// recordEviction increments the eviction counter.
func (c *Cache) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}

// GenerateKey creates a deterministic cache key from a resource name and
// its normalized parameters.
func GenerateKey(resource string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to simple string key
		return fmt.Sprintf("%s:%v", resource, params)
	}

	// Hash the JSON data for a compact key
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", resource, hash[:16])
}
