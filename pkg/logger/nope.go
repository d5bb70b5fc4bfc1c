package logger

import (
	"io"
	"log/slog"
)

// NewNope returns a logger that discards everything. Used as the default
// when a component is built without a logger, and in tests.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
