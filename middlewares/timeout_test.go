package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jordanlepera/essencek/internal"
	"github.com/jordanlepera/essencek/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("deadline reaches the handler", func(t *testing.T) {
		t.Parallel()
		var hasDeadline bool
		serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			_, hasDeadline = c.Deadline()
			return ok(c)
		}, middlewares.Timeout(time.Second))
		assert.True(t, hasDeadline)
	})

	t.Run("expired deadline returns TimeoutError", func(t *testing.T) {
		t.Parallel()
		w := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			<-c.Done()
			return c.Err()
		}, middlewares.Timeout(10*time.Millisecond))
		assert.Equal(t, "request timeout after 10ms", w.Body.String())
	})

	t.Run("written response is kept", func(t *testing.T) {
		t.Parallel()
		w := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			if err := ok(c); err != nil {
				return err
			}
			<-c.Done()
			return nil
		}, middlewares.Timeout(10*time.Millisecond))
		assert.Equal(t, "ok", w.Body.String())
	})
}
