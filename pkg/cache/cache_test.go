package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/archivecord/icons/pkg/cache"
)

func TestMemory_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 42, -1))

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("returns ErrNotFound for expired key", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		var mu sync.Mutex
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		}

		c := cache.NewMemory[string](cache.WithNow(clock))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", time.Minute))

		mu.Lock()
		now = now.Add(2 * time.Minute)
		mu.Unlock()

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("marks entry as recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1", -1))
		require.NoError(t, c.Set(ctx, "b", "2", -1))

		// Touch "a" so "b" becomes the LRU entry.
		_, err := c.Get(ctx, "a")
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "c", "3", -1))

		has, err := c.Has(ctx, "a")
		require.NoError(t, err)
		require.True(t, has, "a should still exist (recently used)")

		has, err = c.Has(ctx, "b")
		require.NoError(t, err)
		require.False(t, has, "b should have been evicted")
	})
}

func TestMemory_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("capacity plus one leaves exactly capacity entries", func(t *testing.T) {
		t.Parallel()

		const capacity = 4
		c := cache.NewMemory[int](cache.WithMaxEntries(capacity))
		defer c.Close()

		ctx := context.Background()
		keys := []string{"a", "b", "c", "d", "e"}
		for i, k := range keys {
			require.NoError(t, c.Set(ctx, k, i, -1))
		}

		require.Equal(t, capacity, c.Len())

		has, err := c.Has(ctx, "a")
		require.NoError(t, err)
		require.False(t, has, "oldest entry should be evicted first")
	})

	t.Run("eviction callback fires for evicted entries", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithMaxEntries(1))
		defer c.Close()

		var evicted []string
		c.SetEvictCallback(func(key string, _ string) {
			evicted = append(evicted, key)
		})

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1", -1))
		require.NoError(t, c.Set(ctx, "b", "2", -1))

		require.Equal(t, []string{"a"}, evicted)
	})

	t.Run("updating an existing key does not evict", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1, -1))
		require.NoError(t, c.Set(ctx, "b", 2, -1))
		require.NoError(t, c.Set(ctx, "a", 3, -1))

		require.Equal(t, 2, c.Len())

		val, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, 3, val)
	})
}

func TestMemory_DefaultTTL(t *testing.T) {
	t.Parallel()

	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	c := cache.NewMemory[string](
		cache.WithDefaultTTL(time.Minute),
		cache.WithNow(clock),
	)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "ttl", "v", 0))
	require.NoError(t, c.Set(ctx, "forever", "v", -1))

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	_, err := c.Get(ctx, "ttl")
	require.ErrorIs(t, err, cache.ErrNotFound)

	_, err = c.Get(ctx, "forever")
	require.NoError(t, err)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "key", "value", -1))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")

	require.ErrorIs(t, c.Set(ctx, "other", "value", -1), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "key"), cache.ErrClosed)
	require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)

	// Reads still work after close.
	val, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, "value", val)
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("computes missing value once under concurrency", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		var calls atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrSet(context.Background(), c, "shared", func(context.Context) (int, time.Duration, error) {
					calls.Add(1)
					time.Sleep(10 * time.Millisecond)
					return 7, -1, nil
				})
				require.NoError(t, err)
				require.Equal(t, 7, v)
			}()
		}
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		boom := errors.New("boom")
		_, err := cache.GetOrSet(context.Background(), c, "k", func(context.Context) (int, time.Duration, error) {
			return 0, 0, boom
		})
		require.ErrorIs(t, err, boom)

		has, err := c.Has(context.Background(), "k")
		require.NoError(t, err)
		require.False(t, has)
	})
}
