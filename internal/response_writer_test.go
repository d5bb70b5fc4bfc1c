package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jordanlepera/essencek/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("implicit status on write", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec, false)

		assert.False(t, w.Written())
		_, err := w.Write([]byte("bonjour"))
		assert.NoError(t, err)
		assert.True(t, w.Written())
		assert.Equal(t, http.StatusOK, w.Status())
		assert.Equal(t, int64(7), w.Size())
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("header sent once", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec, false)

		w.WriteHeader(http.StatusUnprocessableEntity)
		w.WriteHeader(http.StatusInternalServerError)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Status())
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("htmx gets 200 but status is kept", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec, true)

		w.WriteHeader(http.StatusTooManyRequests)
		assert.Equal(t, http.StatusTooManyRequests, w.Status())
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("hooks run once before header", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec, false)

		calls := 0
		w.OnBeforeWrite(func() {
			calls++
			w.Header().Set("X-Request-ID", "abc")
		})
		_, _ = w.Write([]byte("a"))
		_, _ = w.Write([]byte("b"))

		assert.Equal(t, 1, calls)
		assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "ab", rec.Body.String())
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec, false)
		assert.Same(t, rec, w.Unwrap())
		assert.NotPanics(t, w.Flush)
	})
}
