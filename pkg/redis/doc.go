// Package redis opens go-redis clients for the site's shared state: the
// contact rate-limit counters and the MX and gallery caches.
//
// Open validates the URL, applies pool and timeout settings and pings the
// server with retries. Healthcheck and Shutdown plug the client into the
// readiness endpoint and the shutdown hooks.
//
//	if cfg.Redis.Enabled() {
//		client, err := redis.Open(ctx, cfg.Redis.URL, cfg.Redis.Options()...)
//		if err != nil {
//			return err
//		}
//		opts = append(opts,
//			essencek.WithHealthChecks(health.Checks{"redis": redis.Healthcheck(client)}),
//			essencek.WithShutdownHook(redis.Shutdown(client)),
//		)
//	}
package redis
