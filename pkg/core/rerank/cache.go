package rerank

import (
	"context"
	"sync"
	"time"
)

// Annotation is one re-ranked entry returned by the collaborator, in the
// order the collaborator wants the candidates presented.
type Annotation struct {
	ID        string `json:"id"`
	AIScore   int    `json:"aiScore"`
	Reasoning string `json:"reasoning"`
}

// RecommendationCache stores recent re-ranking results so identical
// recommendation requests do not hit the collaborator twice while the
// schedule is unchanged. The cache is an explicit object passed into the
// client by whoever constructs the scheduler service; there is no hidden
// package-level instance.
type RecommendationCache interface {
	Get(ctx context.Context, key string) ([]Annotation, bool)
	Store(ctx context.Context, key string, annotations []Annotation)
}

// memoryCache is the in-process TTL cache used when no redis address is
// configured.
type memoryCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	annotations []Annotation
	expiresAt   time.Time
}

// NewMemoryCache creates an in-process TTL cache. Non-positive ttl and
// maxEntries fall back to 5 minutes and 256 entries.
func NewMemoryCache(ttl time.Duration, maxEntries int) RecommendationCache {
	return newMemoryCache(ttl, maxEntries, time.Now)
}

func newMemoryCache(ttl time.Duration, maxEntries int, now func() time.Time) *memoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &memoryCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]memoryCacheEntry),
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]Annotation, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return append([]Annotation(nil), entry.annotations...), true
}

func (c *memoryCache) Store(ctx context.Context, key string, annotations []Annotation) {
	cloned := append([]Annotation(nil), annotations...)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = memoryCacheEntry{annotations: cloned, expiresAt: expiry}
}

func (c *memoryCache) evictExpiredLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// evictOneLocked drops the entry closest to expiry to make room.
func (c *memoryCache) evictOneLocked() {
	var victim string
	var earliest time.Time
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(earliest) {
			victim = key
			earliest = entry.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}
