package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter records the status and size of a response and runs hooks
// right before the header is sent. For htmx requests every status is sent
// as 200 so that htmx swaps error fragments; Status still reports the
// original code.
type ResponseWriter struct {
	http.ResponseWriter

	mu      sync.Mutex
	status  int
	size    int64
	written bool
	isHTMX  bool
	hooks   []func()
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter, isHTMX bool) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK, isHTMX: isHTMX}
}

// OnBeforeWrite registers fn to run once before the header is sent.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	w.hooks = append(w.hooks, fn)
	w.mu.Unlock()
}

// begin marks the response written and returns the hooks to run. It returns
// false when the header has already been sent.
func (w *ResponseWriter) begin(code int) ([]func(), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return nil, false
	}
	w.written = true
	if code != 0 {
		w.status = code
	}
	hooks := w.hooks
	w.hooks = nil
	return hooks, true
}

func (w *ResponseWriter) sendHeader(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
	code := w.status
	if w.isHTMX {
		code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(code)
}

// WriteHeader sends the header once. Later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if hooks, ok := w.begin(code); ok {
		w.sendHeader(hooks)
	}
}

// Write sends an implicit 200 header on first use.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if hooks, ok := w.begin(0); ok {
		w.sendHeader(hooks)
	}
	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Status is the status code passed to WriteHeader, 200 by default.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size is the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
