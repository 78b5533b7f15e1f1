package cache

import (
	"context"
	"testing"

	"github.com/hupe1980/bitlattice/internal/resource"
	"github.com/stretchr/testify/assert"
)

func TestLRUBlockCache(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRUBlockCache(50, rc)
	ctx := context.Background()

	k1 := CacheKey{Kind: CacheKindFrame, Name: "a"}
	k2 := CacheKey{Kind: CacheKindFrame, Name: "b"}
	k3 := CacheKey{Kind: CacheKindFrame, Name: "c"}

	c.Set(ctx, k1, make([]byte, 20))
	c.Set(ctx, k2, make([]byte, 20))
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	// touch k1 so k2 is the eviction victim
	_, ok := c.Get(ctx, k1)
	assert.True(t, ok)

	c.Set(ctx, k3, make([]byte, 20))
	_, ok = c.Get(ctx, k2)
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get(ctx, k1)
	assert.True(t, ok)
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)

	// Info and frame keys with the same name are distinct
	c.Set(ctx, CacheKey{Kind: CacheKindInfo, Name: "a"}, []byte("{}"))
	assert.Equal(t, 3, c.Len())

	c.Invalidate(func(k CacheKey) bool { return k.Name == "a" })
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(20), rc.MemoryUsage())

	assert.NoError(t, c.Close())
	assert.Zero(t, c.Len())
	assert.Zero(t, rc.MemoryUsage())
}

func TestLRU_EdgeCases(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRUBlockCache(50, rc)
	ctx := context.Background()
	k := CacheKey{Kind: CacheKindFrame, Name: "v"}

	c.Set(ctx, k, make([]byte, 60))
	_, ok := c.Get(ctx, k)
	assert.False(t, ok, "item larger than capacity should not be cached")

	c.Set(ctx, k, make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())

	c.Set(ctx, k, make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())
	assert.Equal(t, int64(20), rc.MemoryUsage())

	c.Set(ctx, k, make([]byte, 5))
	assert.Equal(t, int64(5), c.Size())
	assert.Equal(t, int64(5), rc.MemoryUsage())

	// an oversized replacement drops the stale value
	c.Set(ctx, k, make([]byte, 60))
	_, ok = c.Get(ctx, k)
	assert.False(t, ok)
	assert.Zero(t, rc.MemoryUsage())
}

func TestLRU_ControllerDenies(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 10})
	c := NewLRUBlockCache(50, rc)
	ctx := context.Background()
	k := CacheKey{Kind: CacheKindFrame, Name: "v"}

	c.Set(ctx, k, make([]byte, 8))
	c.Set(ctx, k, make([]byte, 12))

	val, ok := c.Get(ctx, k)
	assert.True(t, ok)
	assert.Len(t, val, 8, "growth beyond the controller limit should be rejected")

	c.Set(ctx, CacheKey{Kind: CacheKindFrame, Name: "w"}, make([]byte, 4))
	_, ok = c.Get(ctx, CacheKey{Kind: CacheKindFrame, Name: "w"})
	assert.False(t, ok)
}

func TestLRU_NilController(t *testing.T) {
	c := NewLRUBlockCache(100, nil)
	ctx := context.Background()
	k := CacheKey{Kind: CacheKindFrame, Name: "v"}

	c.Set(ctx, k, []byte("payload"))
	v, ok := c.Get(ctx, k)
	assert.True(t, ok)
	assert.Equal(t, "payload", string(v))
}

func TestNop(t *testing.T) {
	var c BlockCache = Nop{}
	ctx := context.Background()
	c.Set(ctx, CacheKey{Name: "x"}, []byte("x"))
	_, ok := c.Get(ctx, CacheKey{Name: "x"})
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}
