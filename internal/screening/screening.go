// Package screening decides whether a contact submission may proceed.
// Rules run in order and the first denial wins.
package screening

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/pkg/cache"
	"github.com/jordanlepera/essencek/pkg/dnsverify"
	"github.com/jordanlepera/essencek/pkg/logger"
)

// Mode says whether a rule denies or only reports.
type Mode string

const (
	Live   Mode = "live"
	DryRun Mode = "dry_run"
)

// Config is parsed from the environment.
type Config struct {
	ShieldMode    Mode `env:"SCREENING_SHIELD_MODE" envDefault:"live"`
	BotMode       Mode `env:"SCREENING_BOT_MODE" envDefault:"live"`
	EmailMode     Mode `env:"SCREENING_EMAIL_MODE" envDefault:"live"`
	RateLimitMode Mode `env:"SCREENING_RATE_LIMIT_MODE" envDefault:"live"`

	RateLimit    int           `env:"SCREENING_RATE_LIMIT" envDefault:"5"`
	RateWindow   time.Duration `env:"SCREENING_RATE_WINDOW" envDefault:"10m"`
	RateFailOpen bool          `env:"SCREENING_RATE_FAIL_OPEN" envDefault:"false"`

	CheckMX    bool          `env:"SCREENING_CHECK_MX" envDefault:"true"`
	MXCacheTTL time.Duration `env:"SCREENING_MX_CACHE_TTL" envDefault:"1h"`
	DNSTimeout time.Duration `env:"SCREENING_DNS_TIMEOUT" envDefault:"3s"`

	DisposableListURL string `env:"SCREENING_DISPOSABLE_LIST_URL"`
	DisposableRefresh string `env:"SCREENING_DISPOSABLE_REFRESH" envDefault:"@every 24h"`
}

// DefaultConfig matches the envDefault tags.
func DefaultConfig() Config {
	return Config{
		ShieldMode:        Live,
		BotMode:           Live,
		EmailMode:         Live,
		RateLimitMode:     Live,
		RateLimit:         5,
		RateWindow:        10 * time.Minute,
		CheckMX:           true,
		MXCacheTTL:        time.Hour,
		DNSTimeout:        3 * time.Second,
		DisposableRefresh: "@every 24h",
	}
}

// ErrUnavailable wraps every failure that prevented a decision.
var ErrUnavailable = errors.New("screening: unavailable")

// Rule is one check. It returns contact.Allow to pass the submission on.
type Rule interface {
	Name() string
	Check(ctx context.Context, s contact.Screening) (contact.Decision, error)
}

type modedRule struct {
	Rule
	mode Mode
}

// Screener implements contact.Screener.
type Screener struct {
	rules   []modedRule
	logger  *slog.Logger
	closers []io.Closer
}

var _ contact.Screener = (*Screener)(nil)

type options struct {
	logger   *slog.Logger
	counter  cache.Counter
	mxCache  cache.Cache[bool]
	resolver dnsverify.Resolver
	domains  *DomainList
}

// Option configures a Screener.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCounter sets the rate limit backend. Default: an in-memory counter.
func WithCounter(c cache.Counter) Option {
	return func(o *options) { o.counter = c }
}

// WithMXCache sets the cache of MX lookups. Default: an in-memory cache.
func WithMXCache(c cache.Cache[bool]) Option {
	return func(o *options) { o.mxCache = c }
}

// WithResolver sets the DNS resolver. Default: net.DefaultResolver.
func WithResolver(r dnsverify.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithDomainList sets the disposable-domain list. Default: the embedded list.
func WithDomainList(l *DomainList) Option {
	return func(o *options) { o.domains = l }
}

// New builds the shield, bot, email and rate limit rules, in that order.
func New(cfg Config, opts ...Option) *Screener {
	o := &options{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(o)
	}

	s := &Screener{logger: o.logger}
	if o.counter == nil {
		c := cache.NewMemoryCounter(time.Minute)
		s.closers = append(s.closers, c)
		o.counter = c
	}
	if o.mxCache == nil {
		c := cache.NewMemory[bool](cache.WithDefaultTTL(cfg.MXCacheTTL), cache.WithMaxEntries(10000))
		s.closers = append(s.closers, c)
		o.mxCache = c
	}
	if o.domains == nil {
		o.domains = NewDomainList()
	}

	s.rules = []modedRule{
		{Rule: Shield{}, mode: cfg.ShieldMode},
		{Rule: Bot{}, mode: cfg.BotMode},
		{Rule: &Email{
			domains:  o.domains,
			verifier: dnsverify.New(o.resolver),
			cache:    o.mxCache,
			checkMX:  cfg.CheckMX,
			ttl:      cfg.MXCacheTTL,
			timeout:  cfg.DNSTimeout,
		}, mode: cfg.EmailMode},
		{Rule: &RateLimit{
			counter:  o.counter,
			limit:    cfg.RateLimit,
			window:   cfg.RateWindow,
			failOpen: cfg.RateFailOpen,
			logger:   o.logger,
		}, mode: cfg.RateLimitMode},
	}
	return s
}

// Screen implements contact.Screener.
func (s *Screener) Screen(ctx context.Context, in contact.Screening) (contact.Decision, error) {
	for _, r := range s.rules {
		decision, err := r.Check(ctx, in)
		if err != nil {
			return contact.DecisionUnknown, fmt.Errorf("%w: %s: %w", ErrUnavailable, r.Name(), err)
		}
		if !decision.Denied() {
			continue
		}

		attrs := []any{
			slog.String("rule", r.Name()),
			slog.String("decision", decision.String()),
			slog.String("ip", in.Meta.IP),
		}
		if r.mode == DryRun {
			s.logger.WarnContext(ctx, "screening dry run denial", attrs...)
			continue
		}
		s.logger.InfoContext(ctx, "screening denied", attrs...)
		return decision, nil
	}
	return contact.Allow, nil
}

// Close releases the backends the Screener created itself.
func (s *Screener) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Shutdown returns a shutdown hook calling Close.
func (s *Screener) Shutdown() func(context.Context) error {
	return func(context.Context) error { return s.Close() }
}
