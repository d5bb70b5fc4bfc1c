package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(ctx, "lessencek.fr")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("set get delete", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[bool]()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "lessencek.fr", true, 0))
		v, err := c.Get(ctx, "lessencek.fr")
		require.NoError(t, err)
		assert.True(t, v)

		ok, err := c.Has(ctx, "lessencek.fr")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, c.Delete(ctx, "lessencek.fr"))
		require.NoError(t, c.Delete(ctx, "missing"))
		ok, err = c.Has(ctx, "lessencek.fr")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "short", 1, 10*time.Millisecond))
		require.NoError(t, c.Set(ctx, "forever", 2, -1))
		time.Sleep(30 * time.Millisecond)

		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, cache.ErrNotFound)
		v, err := c.Get(ctx, "forever")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("zero ttl uses default", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithDefaultTTL(10*time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", 1, 0))
		time.Sleep(30 * time.Millisecond)
		ok, err := c.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "dressing", 1, 0))
		require.NoError(t, c.Set(ctx, "placard", 2, 0))
		_, err := c.Get(ctx, "dressing")
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "mansarde", 3, 0))

		assert.Equal(t, 2, c.Len())
		_, err = c.Get(ctx, "placard")
		assert.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "dressing")
		assert.NoError(t, err)
	})

	t.Run("janitor sweeps expired entries", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithCleanupInterval(5 * time.Millisecond))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", 1, time.Millisecond))
		assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("clear and close", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int]()

		require.NoError(t, c.Set(ctx, "a", 1, 0))
		require.NoError(t, c.Clear(ctx))
		assert.Equal(t, 0, c.Len())

		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
		assert.ErrorIs(t, c.Set(ctx, "a", 1, 0), cache.ErrClosed)
		assert.ErrorIs(t, c.Delete(ctx, "a"), cache.ErrClosed)
		assert.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithMaxEntries(50))
		defer c.Close()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := range 100 {
					key := fmt.Sprintf("k%d", (i*j)%80)
					_ = c.Set(ctx, key, j, 0)
					_, _ = c.Get(ctx, key)
				}
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 50)
	})
}
