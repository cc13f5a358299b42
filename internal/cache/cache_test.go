// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package cache

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := newFakeClock()
	c := NewWithoutSweep(ttl)
	c.now = clock.Now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("key1", "value1")

	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	clock.Advance(time.Minute + time.Second)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestCacheSetWithTTLOverridesDefault(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.SetWithTTL("long", "v", time.Hour)
	clock.Advance(30 * time.Minute)

	if _, exists := c.Get("long"); !exists {
		t.Error("Expected entry with custom TTL to survive past default TTL")
	}

	clock.Advance(31 * time.Minute)
	if _, exists := c.Get("long"); exists {
		t.Error("Expected entry to expire after custom TTL")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key", "old")
	c.Set("key", "new")

	value, _ := c.Get("key")
	if value != "new" {
		t.Errorf("Expected overwritten value, got %v", value)
	}
}

func TestCacheDelete(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
}

func TestCacheClearPreservesHitMissCounters(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", "value1")
	c.Get("key1") // hit
	c.Get("nope") // miss

	c.Clear()

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected counters to survive Clear, got hits=%d misses=%d", stats.Hits, stats.Misses)
	}
	if stats.TotalKeys != 0 {
		t.Errorf("Expected 0 keys after Clear, got %d", stats.TotalKeys)
	}
}

func TestCacheStats(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", "value1")
	c.Get("key1") // hit
	c.Get("key2") // miss
	c.Get("key1") // hit

	stats := c.GetStats()

	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}

	hitRate := c.HitRate()
	expectedHitRate := 66.66666666666667 // 2/3 * 100
	if hitRate < expectedHitRate-0.01 || hitRate > expectedHitRate+0.01 {
		t.Errorf("Expected hit rate around %.2f%%, got %.2f%%", expectedHitRate, hitRate)
	}
}

func TestCacheExpiredReadCountsAsSingleMiss(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("key", "v")
	clock.Advance(2 * time.Minute)
	c.Get("key")

	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("Expected exactly 1 miss for expired read, got %d", stats.Misses)
	}
	if stats.Hits != 0 {
		t.Errorf("Expected 0 hits, got %d", stats.Hits)
	}
}

func TestCacheKeysSkipsExpired(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("a", 1)
	c.SetWithTTL("b", 2, time.Hour)
	clock.Advance(2 * time.Minute)

	keys := c.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("Expected only live key b, got %v", keys)
	}
}

func TestCacheRange(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("a", []byte{1, 2, 3})
	c.Set("b", []byte{4, 5})

	total := 0
	c.Range(func(key string, value interface{}) bool {
		if b, ok := value.([]byte); ok {
			total += len(b)
		}
		return true
	})

	if total != 5 {
		t.Errorf("Expected 5 total bytes across entries, got %d", total)
	}
}

func TestCacheSweepRemovesExpired(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	clock.Advance(2 * time.Minute)
	c.sweep()

	stats := c.GetStats()
	if stats.TotalKeys != 0 {
		t.Errorf("Expected sweep to remove expired entries, got %d keys", stats.TotalKeys)
	}
	if stats.Evictions != 2 {
		t.Errorf("Expected 2 evictions, got %d", stats.Evictions)
	}
}

func TestNilCacheDegradesToMiss(t *testing.T) {
	var c *Cache

	c.Set("key", "value") // must not panic
	if _, exists := c.Get("key"); exists {
		t.Error("Expected nil cache to always miss")
	}
	c.Clear()
	c.Delete("key")
	if got := c.HitRate(); got != 0.0 {
		t.Errorf("Expected 0 hit rate on nil cache, got %f", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewWithoutSweep(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%7)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits+stats.Misses != 1000 {
		t.Errorf("Expected 1000 reads recorded, got %d", stats.Hits+stats.Misses)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type params struct {
		Date string `json:"date"`
		Page int    `json:"page"`
	}

	k1 := GenerateKey("apod", params{Date: "2026-01-01", Page: 1})
	k2 := GenerateKey("apod", params{Date: "2026-01-01", Page: 1})
	k3 := GenerateKey("apod", params{Date: "2026-01-02", Page: 1})

	if k1 != k2 {
		t.Error("Expected identical params to produce identical keys")
	}
	if k1 == k3 {
		t.Error("Expected different params to produce different keys")
	}
	if k1 == GenerateKey("neows", params{Date: "2026-01-01", Page: 1}) {
		t.Error("Expected resource name to be part of the key")
	}
}

func TestGenerateKeyResourcePrefix(t *testing.T) {
	keys := []string{
		GenerateKey("apod", map[string]string{"date": "2026-01-01"}),
		GenerateKey("apod", map[string]string{"date": "2026-01-02"}),
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(k) < 6 || k[:5] != "apod:" {
			t.Errorf("Expected apod: prefix, got %q", k)
		}
	}
}
