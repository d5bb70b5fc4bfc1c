package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jordanlepera/essencek/pkg/cookie"
	"github.com/jordanlepera/essencek/pkg/health"
)

// Option configures an App.
type Option func(*App)

// WithMiddleware appends Context middlewares, applied in order.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

// WithHTTPMiddleware appends net/http middlewares such as gorilla/csrf or
// chi's RealIP. They run before every Context middleware.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(a *App) { a.httpMiddlewares = append(a.httpMiddlewares, mw...) }
}

// WithHandlers registers route handlers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

// WithStaticFiles serves subDir of fsys under pattern. Directory listings
// are disabled. It panics if subDir is invalid.
//
//	essencek.WithStaticFiles("/static/", assets.FS, "static")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(sub))
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=86400")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			files.ServeHTTP(w, r)
		})
		a.staticRoutes = append(a.staticRoutes, staticRoute{handler: h, pattern: pattern})
	}
}

// WithErrorHandler sets the handler for errors returned by handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.errorHandler = h }
}

// WithNotFoundHandler sets the 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFoundHandler = h }
}

// WithMethodNotAllowedHandler sets the 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.methodNotAllowedHandler = h }
}

// WithLogger sets the application logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) { a.cookieManager = cookie.New(opts...) }
}

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// HealthOption configures the health endpoints.
type HealthOption func(*healthConfig)

// WithHealthChecks mounts /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  "/health/live",
			readinessPath: "/health/ready",
			checks:        health.Checks{},
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLivenessPath overrides /health/live.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath overrides /health/ready.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if fn != nil {
			c.checks[name] = fn
		}
	}
}
