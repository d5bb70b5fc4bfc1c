package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jordanlepera/essencek/pkg/cookie"
	"github.com/jordanlepera/essencek/pkg/health"
	"github.com/jordanlepera/essencek/pkg/logger"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App wires the router, middlewares and handlers. It is immutable once New
// returns.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	cookieManager           *cookie.Manager
	httpMiddlewares         []func(http.Handler) http.Handler
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an App.
//
//	app := essencek.New(
//		essencek.WithLogger(log),
//		essencek.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//		essencek.WithHandlers(handlers.NewPages(views), handlers.NewContact(svc, views)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:        chi.NewRouter(),
		logger:        logger.NewNope(),
		cookieManager: cookie.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.setupRoutes()
	return a
}

// Router exposes the chi router.
func (a *App) Router() chi.Router { return a.router }

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves on addr until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	cfg.address = addr
	return runServer(a, cfg)
}

func (a *App) setupRoutes() {
	// Raw middlewares run outermost so that every Context sees their
	// request changes.
	for _, mw := range a.httpMiddlewares {
		a.router.Use(mw)
	}
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		opts := []health.Option{health.WithLogger(a.logger)}
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, opts...))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogError("handler error after response was written", slog.String("error", err.Error()))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil || c.Written() {
			return
		}
	}
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
