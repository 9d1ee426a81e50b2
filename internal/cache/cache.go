// Package cache memoizes batch snapshot results so repeated dashboard
// renders within the TTL do not refetch the provider. The key is the
// catalog hash plus the lookback start date; the normalizer itself stays
// pure and cache-free.
package cache

import (
	"fmt"
	"sync"
	"time"

	"macrodash/internal/snapshot"
)

// Key identifies one batch result.
type Key struct {
	CatalogHash string
	StartDate   string // YYYY-MM-DD
}

// String renders the key for logging.
func (k Key) String() string { return fmt.Sprintf("%s@%s", k.CatalogHash, k.StartDate) }

type entry struct {
	snap    snapshot.Snapshot
	expires time.Time
}

// SnapshotCache is a TTL cache of dashboard snapshots. Safe for
// concurrent use.
type SnapshotCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[Key]entry
	now     func() time.Time
}

// New creates a cache with the given TTL.
func New(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		ttl:     ttl,
		entries: make(map[Key]entry),
		now:     time.Now,
	}
}

// Get returns the cached snapshot for key if present and unexpired.
func (c *SnapshotCache) Get(key Key) (snapshot.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expires) {
		return snapshot.Snapshot{}, false
	}
	return e.snap, true
}

// Put stores snap under key, replacing any previous entry.
func (c *SnapshotCache) Put(key Key, snap snapshot.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{snap: snap, expires: c.now().Add(c.ttl)}
}

// Invalidate drops the entry for key, forcing the next Get to miss.
func (c *SnapshotCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Sweep removes all expired entries and returns how many were dropped.
func (c *SnapshotCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			dropped++
		}
	}
	return dropped
}
