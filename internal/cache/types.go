package cache

import "context"

// CacheKind is used to separate key spaces.
type CacheKind uint8

const (
	CacheKindUnknown CacheKind = iota
	CacheKindFrame             // decoded vector payloads
	CacheKindInfo              // encoded Info sidecars
)

// CacheKey identifies a cached value by kind and blob name.
type CacheKey struct {
	Kind CacheKind
	Name string
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key CacheKey) (b []byte, ok bool)
	// Set caches a block. Implementations may retain b; the caller must treat it as immutable.
	Set(ctx context.Context, key CacheKey, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key CacheKey) bool)
	// Close releases any resources.
	Close() error
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}

// Nop is a BlockCache that stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, CacheKey) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, CacheKey, []byte)        {}
func (Nop) Invalidate(func(CacheKey) bool)               {}
func (Nop) Close() error                                 { return nil }
func (Nop) Stats() (hits, misses int64)                  { return 0, 0 }
