// Package middlewares holds the site's request middlewares.
//
// Most are essencek.Middleware values registered with WithMiddleware, in
// this order:
//
//	essencek.WithMiddleware(
//		middlewares.RequestID(),
//		middlewares.RequestLogger("/health/live", "/health/ready"),
//		middlewares.Recover(),
//		middlewares.SecurityHeaders(middlewares.SecurityConfig{HSTS: cfg.Secure()}),
//		middlewares.I18n(translations, middlewares.WithI18nNamespace("site")),
//		middlewares.Timeout(15*time.Second),
//	)
//
// CSRF wraps the raw http.Handler and goes in WithHTTPMiddleware. Templates
// get its hidden field from CSRFField.
//
// RequestIDExtractor plugs the request ID into every log record:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// Recover and Timeout return *PanicError and *TimeoutError to the app's
// error handler rather than writing responses.
package middlewares
