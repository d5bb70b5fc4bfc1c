// Command server runs the L'Essence K website.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jordanlepera/essencek"
	"github.com/jordanlepera/essencek/internal/config"
	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/internal/gallery"
	"github.com/jordanlepera/essencek/internal/handlers"
	"github.com/jordanlepera/essencek/internal/locales"
	"github.com/jordanlepera/essencek/internal/screening"
	"github.com/jordanlepera/essencek/internal/views"
	"github.com/jordanlepera/essencek/middlewares"
	"github.com/jordanlepera/essencek/pkg/cache"
	"github.com/jordanlepera/essencek/pkg/i18n"
	"github.com/jordanlepera/essencek/pkg/job"
	"github.com/jordanlepera/essencek/pkg/logger"
	"github.com/jordanlepera/essencek/pkg/mailer"
	"github.com/jordanlepera/essencek/pkg/mailer/resend"
	"github.com/jordanlepera/essencek/pkg/redis"
	"github.com/jordanlepera/essencek/pkg/storage"
)

func main() {
	cfg := config.MustLoad(".env")
	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())

	if err := run(cfg, log); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()
	var (
		readiness []essencek.HealthOption
		shutdown  []essencek.RunOption
	)

	// Redis backs the rate limit counter and the caches when configured.
	// Without it every instance keeps its own in memory.
	var rdb goredis.UniversalClient
	if cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, cfg.Redis.URL, cfg.Redis.Options()...)
		if err != nil {
			return err
		}
		rdb = client
		readiness = append(readiness, essencek.WithReadinessCheck("redis", redis.Healthcheck(rdb)))
		log.Info("redis connected")
	}

	translations, err := i18n.New(
		i18n.WithDefaultLanguage(locales.Default),
		i18n.WithLanguages(locales.Languages...),
		i18n.WithYAMLDir(locales.FS),
		i18n.WithMissingKeyHandler(func(lang, ns, key string) {
			log.Warn("missing translation", slog.String("lang", lang), slog.String("namespace", ns), slog.String("key", key))
		}),
	)
	if err != nil {
		return err
	}

	// Gallery
	var source gallery.Source = gallery.DefaultCatalogue()
	var imageSources []string
	if cfg.Storage.Enabled() {
		store, err := storage.New(cfg.Storage)
		if err != nil {
			return err
		}
		source = gallery.NewStorageSource(store, cfg.Gallery.Prefix)
		imageSources = append(imageSources, storageOrigin(cfg.Storage))
		readiness = append(readiness, essencek.WithReadinessCheck("storage", store.Healthcheck()))
	}
	var galleryCache cache.Cache[[]gallery.Image]
	if rdb != nil {
		galleryCache = cache.NewRedis[[]gallery.Image](rdb, nil, cache.WithPrefix("essencek:gallery"), cache.WithRedisDefaultTTL(cfg.Gallery.CacheTTL))
	} else {
		mem := cache.NewMemory[[]gallery.Image](cache.WithDefaultTTL(cfg.Gallery.CacheTTL))
		shutdown = append(shutdown, essencek.ShutdownHook(closeHook(mem)))
		galleryCache = mem
	}
	photos := gallery.NewService(source, galleryCache, cfg.Gallery, gallery.WithLogger(log))

	// Abuse screening
	domains := screening.NewDomainList(
		screening.WithSource(cfg.Screening.DisposableListURL),
		screening.WithRefreshSchedule(cfg.Screening.DisposableRefresh),
		screening.WithListLogger(log),
	)
	screenOpts := []screening.Option{screening.WithLogger(log), screening.WithDomainList(domains)}
	if rdb != nil {
		screenOpts = append(screenOpts,
			screening.WithCounter(cache.NewRedisCounter(rdb, "essencek:ratelimit")),
			screening.WithMXCache(cache.NewRedis[bool](rdb, nil, cache.WithPrefix("essencek:mx"), cache.WithRedisDefaultTTL(cfg.Screening.MXCacheTTL))),
		)
	}
	screener := screening.New(cfg.Screening, screenOpts...)

	jobs, err := job.NewManager(
		job.WithLogger(log),
		job.WithTaskTimeout(time.Minute),
		job.WithScheduledTask(domains),
		job.WithScheduledFunc("gallery_warmup", "@every "+cfg.Gallery.CacheTTL.String(), func(ctx context.Context) error {
			_, err := photos.Groups(ctx, "")
			return err
		}),
	)
	if err != nil {
		return err
	}
	readiness = append(readiness, essencek.WithReadinessCheck("jobs", job.Healthcheck(jobs)))

	// Contact
	var sender mailer.Sender
	if cfg.Resend.Enabled() {
		sender = resend.New(cfg.Resend)
	} else {
		log.Warn("RESEND_API_KEY not set, contact emails are logged instead of sent")
		sender = mailer.NewLogSender(log)
	}
	notifier := contact.NewEmailNotifier(mailer.New(sender, contact.NewRenderer(), cfg.Mailer), cfg.Contact)
	submissions := contact.NewService(cfg.Contact, screener, notifier, contact.WithLogger(log))

	// HTTP
	cookieSecret := cfg.Server.CookieSecret
	if cookieSecret == "" {
		cookieSecret = randomHex(32)
		log.Warn("COOKIE_SECRET not set, using a random secret")
	}
	csrfKey := []byte(cfg.Server.CSRFKey)
	if len(csrfKey) == 0 {
		csrfKey = []byte(randomHex(16))
		log.Warn("CSRF_KEY not set, using a random key")
	}

	site := handlers.NewSite(views.MustNew(), cfg.Server.BaseURL, translations.Languages())

	var httpMiddlewares []func(http.Handler) http.Handler
	if cfg.Server.TrustProxy {
		httpMiddlewares = append(httpMiddlewares, middleware.RealIP)
	}
	httpMiddlewares = append(httpMiddlewares, middlewares.CSRF(middlewares.CSRFConfig{
		Key:          csrfKey,
		Secure:       cfg.Secure(),
		ErrorHandler: site.CSRFFailure(translations, locales.Namespace, log),
	}))

	app := essencek.New(
		essencek.WithLogger(log),
		essencek.WithCookieOptions(
			essencek.WithCookieSecret(cookieSecret),
			essencek.WithCookieSecure(cfg.Secure()),
		),
		essencek.WithHTTPMiddleware(httpMiddlewares...),
		essencek.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger("/health/live", "/health/ready"),
			middlewares.Recover(),
			middlewares.SecurityHeaders(middlewares.SecurityConfig{
				HSTS:          cfg.Secure(),
				ImageSources:  imageSources,
				ScriptSources: []string{"https://unpkg.com"},
			}),
			middlewares.I18n(translations, middlewares.WithI18nNamespace(locales.Namespace)),
			middlewares.Timeout(cfg.Server.RequestTimeout),
		),
		essencek.WithStaticFiles("/static/", views.Static(), "static"),
		essencek.WithHandlers(
			handlers.NewPages(site, photos),
			handlers.NewContact(site, submissions, views.DefaultContactDetails),
		),
		essencek.WithErrorHandler(site.ErrorHandler),
		essencek.WithNotFoundHandler(site.NotFound),
		essencek.WithMethodNotAllowedHandler(site.MethodNotAllowed),
		essencek.WithHealthChecks(readiness...),
	)

	opts := []essencek.RunOption{
		essencek.Logger(log),
		essencek.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		essencek.StartupHook(jobs.StartFunc()),
		essencek.StartupHook(func(context.Context) error {
			if domains.Schedule() != "" {
				go func() { _ = jobs.RunNow(context.Background(), domains.Name()) }()
			}
			return nil
		}),
		essencek.ShutdownHook(jobs.Shutdown()),
		essencek.ShutdownHook(screener.Shutdown()),
	}
	opts = append(opts, shutdown...)
	if rdb != nil {
		opts = append(opts, essencek.ShutdownHook(redis.Shutdown(rdb)))
	}
	opts = append(opts, essencek.ShutdownHook(logger.SentryFlush(2*time.Second)))

	log.Info("starting server",
		slog.String("addr", cfg.Server.Addr),
		slog.String("env", cfg.Server.Env),
		slog.Bool("redis", rdb != nil),
		slog.Bool("storage", cfg.Storage.Enabled()),
		slog.Bool("resend", cfg.Resend.Enabled()),
	)
	return app.Run(cfg.Server.Addr, opts...)
}

// storageOrigin is the origin gallery images are served from, for the
// img-src policy.
func storageOrigin(cfg storage.Config) string {
	for _, raw := range []string{cfg.PublicURL, cfg.Endpoint} {
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}
	return "https:"
}

func closeHook(c interface{ Close() error }) func(context.Context) error {
	return func(context.Context) error { return c.Close() }
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
