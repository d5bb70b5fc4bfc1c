package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jordanlepera/essencek/internal"
)

// RequestLogger logs one line per request with method, path, status,
// size and duration. Requests ending in a handler error are logged at warn
// level for 4xx and error level for 5xx, with the status the error handler
// will send. Paths in skip are not logged.
func RequestLogger(skip ...string) internal.Middleware {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if _, ok := skipped[r.URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = statusFromError(err)
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", c.IsHTMX()),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}

func statusFromError(err error) int {
	if he := internal.AsHTTPError(err); he != nil {
		return he.Code
	}
	if IsTimeoutError(err) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
