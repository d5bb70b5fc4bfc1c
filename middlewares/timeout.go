package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/jordanlepera/essencek/internal"
)

// DefaultTimeout bounds a request when Timeout gets a non-positive value.
const DefaultTimeout = 30 * time.Second

// Timeout sets a deadline on the request context. Handlers pass the context
// to screening and delivery calls, which give up when it expires. If the
// deadline passes before anything was written, a TimeoutError goes to the
// error handler.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", d.String())
				return &TimeoutError{Duration: d}
			}
			return err
		}
	}
}
