// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis": redis.Healthcheck(client),
//	}))
//
// Readiness checks run concurrently under a shared timeout. Responses are
// plain text unless the client asks for JSON with ?format=json or an
// Accept: application/json header.
package health
