package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level and output format of the stdout handler.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// New creates a logger writing to stdout, fanned out to Sentry when a DSN is set.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	base := newBaseHandler(w, cfg)
	if sentryHandler := newSentryHandler(cfg.Sentry, base); sentryHandler != nil {
		return slog.New(NewLogHandlerDecorator(newMultiHandler(base, sentryHandler), extractors...))
	}
	return slog.New(NewLogHandlerDecorator(base, extractors...))
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values yield info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newBaseHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
