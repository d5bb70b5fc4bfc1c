package middlewares_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/internal"
	"github.com/jordanlepera/essencek/middlewares"
	"github.com/jordanlepera/essencek/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid v7", func(t *testing.T) {
		t.Parallel()
		var got string
		w := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			got = middlewares.GetRequestID(c)
			return ok(c)
		}, middlewares.RequestID())

		require.NotEmpty(t, got)
		assert.Equal(t, got, w.Header().Get("X-Request-ID"))
		id, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
	})

	t.Run("reuses upstream id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "edge-123")
		w := serve(req, ok, middlewares.RequestID())
		assert.Equal(t, "edge-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("ignores oversized upstream id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 500))
		w := serve(req, ok, middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "fixed" })))
		assert.Equal(t, "fixed", w.Header().Get("X-Request-ID"))
	})

	t.Run("extractor feeds the logger", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Level: "info"}, middlewares.RequestIDExtractor())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-42")
		serve(req, func(c internal.Context) error {
			log.InfoContext(c, "contact submitted")
			return ok(c)
		}, middlewares.RequestID())

		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
		assert.Empty(t, middlewares.RequestIDFromContext(context.Background()))
	})
}
