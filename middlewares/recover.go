package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/jordanlepera/essencek/internal"
)

// DefaultStackSize is the maximum captured stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize int
}

// WithRecoverStackSize sets the captured stack size. Zero disables stacks.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) { cfg.stackSize = size }
}

// Recover turns a panic in the chain into a PanicError for the error
// handler.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				var stack []byte
				if cfg.stackSize > 0 {
					stack = make([]byte, cfg.stackSize)
					stack = stack[:runtime.Stack(stack, false)]
				}
				c.LogError("panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(stack)),
				)
				err = &PanicError{Value: r, Stack: stack}
			}()
			return next(c)
		}
	}
}
