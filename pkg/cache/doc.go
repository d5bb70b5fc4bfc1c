// Package cache provides generic TTL caches and fixed-window counters with
// in-memory and Redis backends.
//
// Cache[V] is implemented by Memory (LRU bounded, janitor-swept) and Redis
// (JSON values by default, optional key prefix). GetOrSet wraps any Cache
// with stampede protection:
//
//	mx := cache.NewMemory[bool](cache.WithDefaultTTL(time.Hour))
//	ok, err := cache.GetOrSet(ctx, mx, domain, func(ctx context.Context) (bool, time.Duration, error) {
//		has, err := resolver.HasMX(ctx, domain)
//		return has, 0, err
//	})
//
// Counter backs rate limiting. MemoryCounter is process-local; RedisCounter
// runs an INCR/PEXPIRE script so every instance shares one window:
//
//	c := cache.NewRedisCounter(client, "ratelimit")
//	n, ttl, err := c.Incr(ctx, "contact:"+ip, 10*time.Minute)
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// cache default and negative never expires.
package cache
