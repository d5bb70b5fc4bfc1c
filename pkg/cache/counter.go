package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidWindow is returned by Incr for a non-positive window.
var ErrInvalidWindow = errors.New("cache: counter window must be positive")

// Counter is a fixed-window hit counter.
//
// Incr adds one hit to key and returns the hit count inside the current
// window together with the time left before the window resets. The window
// starts with the first hit and is not extended by later ones.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
	Close() error
}

type window struct {
	resetAt time.Time
	count   int64
}

// MemoryCounter is a process-local Counter.
// Expired windows are swept by a background goroutine.
type MemoryCounter struct {
	windows map[string]*window
	now     func() time.Time
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemoryCounter creates a MemoryCounter. A positive cleanupInterval
// starts the sweeper.
func NewMemoryCounter(cleanupInterval time.Duration) *MemoryCounter {
	c := &MemoryCounter{
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.sweep(cleanupInterval)
	}
	return c
}

// Incr implements Counter.
func (c *MemoryCounter) Incr(_ context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	if d <= 0 {
		return 0, 0, ErrInvalidWindow
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, 0, ErrClosed
	}

	now := c.now()
	w, ok := c.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		c.windows[key] = w
	}
	w.count++

	return w.count, w.resetAt.Sub(now), nil
}

// Close stops the sweeper. It is safe to call more than once.
func (c *MemoryCounter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	c.windows = nil
	return nil
}

func (c *MemoryCounter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			for k, w := range c.windows {
				if !now.Before(w.resetAt) {
					delete(c.windows, k)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

// incrScript increments the key and sets its expiry on the first hit only,
// returning {count, pttl}.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisCounter is a Counter shared by every instance using the same Redis.
type RedisCounter struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCounter creates a RedisCounter. Keys are stored as "{prefix}:{key}".
func NewRedisCounter(client redis.UniversalClient, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: strings.TrimRight(prefix, ":")}
}

// Incr implements Counter.
func (c *RedisCounter) Incr(ctx context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	if d <= 0 {
		return 0, 0, ErrInvalidWindow
	}

	res, err := incrScript.Run(ctx, c.client, []string{c.key(key)}, d.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, errors.New("cache: unexpected counter script reply")
	}

	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = d
	}
	return res[0], ttl, nil
}

// Close is a no-op. The client is closed by its owner.
func (c *RedisCounter) Close() error {
	return nil
}

func (c *RedisCounter) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

var (
	_ Counter = (*MemoryCounter)(nil)
	_ Counter = (*RedisCounter)(nil)
)
