package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jordanlepera/essencek/internal"
	"github.com/jordanlepera/essencek/pkg/logger"
)

type requestIDKey struct{}

// maxRequestIDLength caps upstream IDs echoed back in responses and logs.
const maxRequestIDLength = 128

// DefaultRequestIDHeaders are checked in order for an upstream request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestIDConfig configures RequestID.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders sets the headers checked for an upstream ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) { cfg.Headers = headers }
}

// WithRequestIDGenerator replaces the UUIDv7 generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) { cfg.Generator = gen }
}

// NewRequestID returns a time-ordered UUIDv7, falling back to v4 if the
// clock source fails.
func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RequestID reuses an upstream request ID or generates one, stores it in
// the context and echoes it in the X-Request-ID response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      NewRequestID,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			var reqID string
			for _, header := range cfg.Headers {
				if v := c.Header(header); v != "" && len(v) <= maxRequestIDLength {
					reqID = v
					break
				}
			}
			if reqID == "" {
				reqID = cfg.Generator()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.ResponseHeader, reqID)
			return next(c)
		}
	}
}

// GetRequestID returns the request ID, or "" without the middleware.
func GetRequestID(c internal.Context) string {
	return RequestIDFromContext(c)
}

// RequestIDFromContext reads the request ID from a plain context.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// RequestIDExtractor adds request_id to every log record written with the
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := RequestIDFromContext(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
