package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New[int](Config{MaxItems: 10, TTL: time.Minute})

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	hits, misses, rate := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.InDelta(t, 50.0, rate, 0.001)
}

func TestCache_Expiry(t *testing.T) {
	c := New[string](Config{TTL: time.Second})
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	now = now.Add(2 * time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok, "entry should have expired")
	assert.Equal(t, 0, c.Size())
}

func TestCache_Eviction(t *testing.T) {
	c := New[int](Config{MaxItems: 2, TTL: time.Minute})
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)
	require.Equal(t, 2, c.Size(), "overwrite must not evict")

	c.Set("c", 3)
	assert.Equal(t, 2, c.Size())
}

func TestCache_Defaults(t *testing.T) {
	c := New[int](Config{})
	assert.Equal(t, DefaultMaxItems, c.maxItems)
	assert.Equal(t, DefaultTTL, c.ttl)

	c.Set("a", 1)
	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCompletionCache(t *testing.T) {
	cc := NewCompletionCache(CompletionConfig{TTL: time.Minute})
	calls := 0
	compute := func() []string {
		calls++
		return []string{"add", "remove"}
	}

	first := cc.Lookup([]string{"test"}, compute)
	first[0] = "mutated"
	second := cc.Lookup([]string{"TEST"}, compute)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "add", second[0], "cached slice was mutated")

	hits, misses := cc.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	cc.Invalidate()
	cc.Lookup([]string{"test"}, compute)
	assert.Equal(t, 2, calls, "Invalidate should force recomputation")
}
