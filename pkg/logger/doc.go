// Package logger builds the structured slog logger used across the site.
//
// Records go to stdout as JSON (or text with LOG_FORMAT=text). When
// SENTRY_DSN is set they are also handed to Sentry: errors open issues and
// warnings are kept as searchable logs.
//
// Request-scoped values are attached with ContextExtractor functions that
// run on every record:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "contact submission accepted", "reference", ref)
//	// {"level":"INFO","msg":"contact submission accepted","reference":"…","request_id":"…"}
//
// Register SentryFlush as a shutdown hook so buffered events are sent
// before the process exits.
package logger
