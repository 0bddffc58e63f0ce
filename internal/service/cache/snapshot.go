package cache

import (
	"sync"
	"time"

	"FinBoard/internal/domain/models"
)

type entry struct {
	frame    *models.Frame
	storedAt time.Time
}

// SnapshotCache memoizes transformed frames per (universe, date range) key
// for a fixed TTL. Entries are timestamp-checked on read; Clear backs the
// manual-refresh boundary. Cached frames are immutable by convention.
type SnapshotCache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{ttl: ttl, m: make(map[string]entry)}
}

// Get returns the cached frame for key if it is still fresh.
func (c *SnapshotCache) Get(key string) (*models.Frame, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(e.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.frame, true
}

// Set stores a frame under key, replacing any previous entry wholesale.
func (c *SnapshotCache) Set(key string, f *models.Frame) {
	c.mu.Lock()
	c.m[key] = entry{frame: f, storedAt: time.Now()}
	c.mu.Unlock()
}

// Clear drops every entry; the next load re-fetches.
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	c.m = make(map[string]entry)
	c.mu.Unlock()
}
