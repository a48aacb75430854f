// Package cache wraps an analyzer with a TTL result cache keyed by a
// content hash of the full input. It sits outside the engine: the core
// pipeline stays a pure transform.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/boisvert/sylva/internal/dispatch"
	"github.com/boisvert/sylva/internal/engine"
	"github.com/boisvert/sylva/internal/model"
)

// DefaultTTL is the cache entry lifetime when none is configured.
const DefaultTTL = 15 * time.Minute

type entry struct {
	report  *model.Report
	expires time.Time
}

// Cache is a TTL-bounded result cache over an Analyzer. Cached reports
// are shared values; callers treat reports as immutable.
type Cache struct {
	inner dispatch.Analyzer
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New wraps inner in a result cache.
func New(inner dispatch.Analyzer, opts ...Option) *Cache {
	c := &Cache{
		inner:   inner,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze returns a cached report for an identical input when one is
// still fresh, otherwise delegates to the inner analyzer and stores the
// result. Expired entries are evicted lazily.
func (c *Cache) Analyze(ctx context.Context, in engine.Input) (*model.Report, error) {
	key, err := Key(in)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if c.now().Before(e.expires) {
			c.mu.Unlock()
			return e.report, nil
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	report, err := c.inner.Analyze(ctx, in)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{report: report, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return report, nil
}

// Len reports the number of stored entries, fresh or expired.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key derives the content hash of (inventory, overrides, climate).
func Key(in engine.Input) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
