package cache

import (
	"strings"
	"time"
)

// CompletionCache caches tab-completion candidates per token path
type CompletionCache struct {
	cache *Cache[[]string]
}

// CompletionConfig holds configuration for the completion cache
type CompletionConfig struct {
	TTL        time.Duration // default: 30 seconds
	MaxEntries int           // default: 1024
}

// NewCompletionCache creates a completion cache
func NewCompletionCache(cfg CompletionConfig) *CompletionCache {
	return &CompletionCache{
		cache: New[[]string](Config{MaxItems: cfg.MaxEntries, TTL: cfg.TTL}),
	}
}

// Lookup returns the candidates for path, computing them on a miss. The
// returned slice is a copy and may be modified by the caller.
func (c *CompletionCache) Lookup(path []string, compute func() []string) []string {
	key := pathKey(path)
	candidates, ok := c.cache.Get(key)
	if !ok {
		candidates = compute()
		c.cache.Set(key, candidates)
	}
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}

// Invalidate drops every cached path
func (c *CompletionCache) Invalidate() {
	c.cache.Clear()
}

// Stats returns the hit and miss counters
func (c *CompletionCache) Stats() (hits, misses int64) {
	hits, misses, _ = c.cache.Stats()
	return hits, misses
}

// pathKey joins tokens with a unit separator, which cannot appear in a token
func pathKey(path []string) string {
	return strings.ToLower(strings.Join(path, "\x1f"))
}
