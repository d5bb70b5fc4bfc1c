package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/pkg/cache"
)

func TestMemoryCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("counts within window", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCounter(0)
		defer c.Close()

		for want := int64(1); want <= 5; want++ {
			n, ttl, err := c.Incr(ctx, "contact:203.0.113.7", 10*time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, n)
			assert.Greater(t, ttl, 9*time.Minute)
		}

		n, _, err := c.Incr(ctx, "contact:198.51.100.1", 10*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("window resets", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCounter(0)
		defer c.Close()

		_, _, err := c.Incr(ctx, "k", 10*time.Millisecond)
		require.NoError(t, err)
		_, _, err = c.Incr(ctx, "k", 10*time.Millisecond)
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)

		n, _, err := c.Incr(ctx, "k", 10*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("invalid window", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCounter(0)
		defer c.Close()
		_, _, err := c.Incr(ctx, "k", 0)
		assert.ErrorIs(t, err, cache.ErrInvalidWindow)
	})

	t.Run("closed counter", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCounter(time.Millisecond)
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
		_, _, err := c.Incr(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, cache.ErrClosed)
	})

	t.Run("concurrent increments are exact", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryCounter(time.Millisecond)
		defer c.Close()

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, _ = c.Incr(ctx, "shared", time.Minute)
			}()
		}
		wg.Wait()

		n, _, err := c.Incr(ctx, "shared", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(51), n)
	})
}
