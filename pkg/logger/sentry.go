package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// WarnAsLogs also ships warnings as Sentry logs; errors always become issues.
	WarnAsLogs bool `env:"SENTRY_WARN_AS_LOGS" envDefault:"true"`
}

func newSentryHandler(cfg SentryConfig, fallback slog.Handler) slog.Handler {
	if cfg.DSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return nil
	}

	logLevel := []slog.Level{slog.LevelError}
	if cfg.WarnAsLogs {
		logLevel = []slog.Level{slog.LevelWarn, slog.LevelError}
	}
	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())
}

// SentryFlush returns a shutdown hook that drains buffered Sentry events.
// It is a no-op when Sentry was never initialised.
func SentryFlush(timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		if sentry.CurrentHub().Client() == nil {
			return nil
		}
		if deadline, ok := ctx.Deadline(); ok {
			timeout = min(timeout, time.Until(deadline))
		}
		sentry.Flush(timeout)
		return nil
	}
}
