package mailer

import (
	"context"
	"log/slog"
)

// Sender delivers a fully prepared Email through a provider.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// LogSender writes emails to a logger instead of delivering them. It is
// the development fallback when no provider is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(l *slog.Logger) *LogSender {
	return &LogSender{logger: l}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, email *Email) error {
	s.logger.InfoContext(ctx, "email not sent, no provider configured",
		slog.Any("to", email.To),
		slog.String("reply_to", email.ReplyTo),
		slog.String("subject", email.Subject),
		slog.String("text", email.Text),
	)
	return nil
}
