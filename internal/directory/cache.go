package directory

import (
	"context"
	"sync"
	"time"
)

// Cache memoizes recent search results by case-folded query. Entries expire
// lazily on read; no background sweep runs. Implementations must tolerate
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]DrugInfo, bool)
	Set(ctx context.Context, key string, results []DrugInfo)
}

type memoryCacheEntry struct {
	results  []DrugInfo
	storedAt time.Time
}

// MemoryCache is the in-process Cache used when no Redis is configured.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryCacheEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryCacheEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]DrugInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.results, true
}

func (c *MemoryCache) Set(_ context.Context, key string, results []DrugInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryCacheEntry{results: results, storedAt: c.now()}
}
