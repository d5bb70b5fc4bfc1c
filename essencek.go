package essencek

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jordanlepera/essencek/internal"
	"github.com/jordanlepera/essencek/pkg/cookie"
	"github.com/jordanlepera/essencek/pkg/health"
	"github.com/jordanlepera/essencek/pkg/htmx"
)

type (
	// App owns the router and the server lifecycle.
	App = internal.App

	// Router is what handlers declare routes on.
	Router = internal.Router

	// Context is the per-request API handed to handlers.
	Context = internal.Context

	// Handler declares routes.
	Handler = internal.Handler

	HandlerFunc  = internal.HandlerFunc
	Middleware   = internal.Middleware
	ErrorHandler = internal.ErrorHandler

	Option       = internal.Option
	RunOption    = internal.RunOption
	HealthOption = internal.HealthOption

	// Component is anything renderable, templ.Component included.
	Component = internal.Component

	ValidationErrors = internal.ValidationErrors
	ResponseWriter   = internal.ResponseWriter

	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption

	CookieOption = cookie.Option
	RenderOption = htmx.RenderOption
)

// New creates an App. It is immutable once created.
//
//	app := essencek.New(
//		essencek.WithLogger(log),
//		essencek.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//		essencek.WithHandlers(handlers.NewPages(v), handlers.NewContact(svc, v)),
//	)
//	err := app.Run(":8080", essencek.ShutdownHook(redis.Shutdown(rdb)))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

func WithMiddleware(mw ...Middleware) Option { return internal.WithMiddleware(mw...) }

// WithHTTPMiddleware registers raw net/http middlewares, such as CSRF
// protection. They run before every Middleware.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return internal.WithHTTPMiddleware(mw...)
}

func WithHandlers(h ...Handler) Option { return internal.WithHandlers(h...) }

// WithStaticFiles serves subDir of fsys under pattern.
//
//	//go:embed static
//	var assets embed.FS
//
//	essencek.WithStaticFiles("/static/", assets, "static")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

func WithErrorHandler(h ErrorHandler) Option   { return internal.WithErrorHandler(h) }
func WithNotFoundHandler(h HandlerFunc) Option { return internal.WithNotFoundHandler(h) }
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}
func WithLogger(l *slog.Logger) Option              { return internal.WithLogger(l) }
func WithCookieOptions(opts ...CookieOption) Option { return internal.WithCookieOptions(opts...) }
func WithHealthChecks(opts ...HealthOption) Option  { return internal.WithHealthChecks(opts...) }
func WithLivenessPath(path string) HealthOption     { return internal.WithLivenessPath(path) }
func WithReadinessPath(path string) HealthOption    { return internal.WithReadinessPath(path) }
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options.

func Logger(l *slog.Logger) RunOption                      { return internal.Logger(l) }
func ShutdownTimeout(d time.Duration) RunOption            { return internal.ShutdownTimeout(d) }
func StartupHook(fn func(context.Context) error) RunOption { return internal.StartupHook(fn) }
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}
func WithContext(ctx context.Context) RunOption { return internal.WithContext(ctx) }
func WithListener(ln net.Listener) RunOption    { return internal.WithListener(ln) }

// Context helpers.

// ContextValue returns the request context value under key as T.
func ContextValue[T any](c Context, key any) T { return internal.ContextValue[T](c, key) }

// Param returns a URL parameter as T.
func Param[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// QueryDefault returns a query parameter as T, or def.
func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, def T) T {
	return internal.QueryDefault(c, name, def)
}

// Errors.

func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

func WithTitle(title string) HTTPErrorOption   { return internal.WithTitle(title) }
func WithDetail(detail string) HTTPErrorOption { return internal.WithDetail(detail) }
func WithRequestID(id string) HTTPErrorOption  { return internal.WithRequestID(id) }
func WithError(err error) HTTPErrorOption      { return internal.WithError(err) }

// Cookie options.

func WithCookieSecret(secret string) CookieOption { return cookie.WithSecret(secret) }
func WithCookieSecure(secure bool) CookieOption   { return cookie.WithSecure(secure) }
func WithCookieDomain(domain string) CookieOption { return cookie.WithDomain(domain) }

var ErrCookieNotFound = cookie.ErrNotFound
