package screening

import (
	"context"
	"log/slog"
	"time"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/pkg/cache"
)

const rateKeyPrefix = "contact:"

// RateLimit allows limit submissions per client IP in a fixed window.
type RateLimit struct {
	counter  cache.Counter
	logger   *slog.Logger
	limit    int
	window   time.Duration
	failOpen bool
}

func (*RateLimit) Name() string { return "rate_limit" }

func (r *RateLimit) Check(ctx context.Context, s contact.Screening) (contact.Decision, error) {
	ip := s.Meta.IP
	if ip == "" {
		ip = "unknown"
	}

	count, ttl, err := r.counter.Incr(ctx, rateKeyPrefix+ip, r.window)
	if err != nil {
		if r.failOpen {
			r.logger.WarnContext(ctx, "rate limit backend failed, allowing",
				slog.String("ip", ip),
				slog.Any("error", err),
			)
			return contact.Allow, nil
		}
		return contact.DecisionUnknown, err
	}

	if count > int64(r.limit) {
		r.logger.DebugContext(ctx, "rate limit exceeded",
			slog.String("ip", ip),
			slog.Int64("count", count),
			slog.Duration("retry_after", ttl),
		)
		return contact.DenyRateLimited, nil
	}
	return contact.Allow, nil
}
