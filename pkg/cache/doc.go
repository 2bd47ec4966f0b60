// Package cache provides a generic in-memory cache with LRU eviction and
// optional TTL-based expiration.
//
// The cache is built on a hash map for O(1) lookups and a doubly-linked list
// for O(1) recency ordering. The most recently accessed entries sit at the
// front of the list; when a maximum entry count is configured, inserts past
// capacity evict from the back.
//
// Expiration is lazy: an expired entry is removed the next time it is
// observed by Get or Has. There is no background sweeper, which keeps the
// cache goroutine-free and makes its behavior fully deterministic under an
// injected clock (see [WithNow]).
//
//	c := cache.NewMemory[image.Image](cache.WithMaxEntries(256))
//	defer c.Close()
//
//	c.Set(ctx, "k", img, -1) // negative TTL: never expires
//	v, err := c.Get(ctx, "k")
//	if errors.Is(err, cache.ErrNotFound) {
//	    // miss
//	}
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// configured default TTL, negative never expires.
//
// # Stampede prevention
//
// The standalone [GetOrSet] helper computes a missing value at most once
// under concurrent misses for the same key, using singleflight:
//
//	v, err := cache.GetOrSet(ctx, c, key, func(ctx context.Context) (V, time.Duration, error) {
//	    return load(ctx, key)
//	})
package cache
