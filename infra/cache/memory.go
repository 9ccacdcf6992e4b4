// Package cache provides rate-cache implementations: a process-local TTL
// map and a Redis-backed cache.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bankline/bankline/pkg/cache"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
)

type memoryEntry struct {
	rates     exchange.Rates
	expiresAt time.Time
}

// MemoryRatesCache is an in-process rates cache with per-entry TTL.
type MemoryRatesCache struct {
	mu      sync.RWMutex
	entries map[money.Code]memoryEntry
	now     func() time.Time
}

// NewMemoryRatesCache creates an empty in-memory rates cache.
func NewMemoryRatesCache() *MemoryRatesCache {
	return &MemoryRatesCache{
		entries: make(map[money.Code]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached snapshot for base, or ErrCacheMiss when absent
// or expired.
func (c *MemoryRatesCache) Get(_ context.Context, base money.Code) (*exchange.Rates, error) {
	c.mu.RLock()
	entry, ok := c.entries[base]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return nil, cache.ErrCacheMiss
	}
	rates := entry.rates
	return &rates, nil
}

// Set stores a snapshot under its base currency for ttl.
func (c *MemoryRatesCache) Set(_ context.Context, rates *exchange.Rates, ttl time.Duration) error {
	base := rates.Base
	if base == "" {
		base = money.DefaultCode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[base] = memoryEntry{rates: *rates, expiresAt: c.now().Add(ttl)}
	return nil
}

// Delete removes the snapshot for base.
func (c *MemoryRatesCache) Delete(_ context.Context, base money.Code) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, base)
	return nil
}

var _ cache.RatesCache = (*MemoryRatesCache)(nil)
