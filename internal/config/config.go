// Package config loads the site configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/internal/gallery"
	"github.com/jordanlepera/essencek/internal/screening"
	"github.com/jordanlepera/essencek/pkg/logger"
	"github.com/jordanlepera/essencek/pkg/mailer"
	"github.com/jordanlepera/essencek/pkg/mailer/resend"
	"github.com/jordanlepera/essencek/pkg/redis"
	"github.com/jordanlepera/essencek/pkg/storage"
)

// Environments.
const (
	Development = "development"
	Production  = "production"
)

var (
	ErrLoad    = errors.New("config: load failed")
	ErrInvalid = errors.New("config: invalid")
)

// Server holds the HTTP settings.
type Server struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	BaseURL         string        `env:"APP_URL" envDefault:"http://localhost:8080"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	CookieSecret    string        `env:"COOKIE_SECRET"`
	CSRFKey         string        `env:"CSRF_KEY"`
	TrustProxy      bool          `env:"TRUST_PROXY" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// Config is the whole site configuration. It is loaded once and passed to
// constructors.
type Config struct {
	Server    Server
	Logger    logger.Config
	Redis     redis.Config
	Mailer    mailer.Config
	Resend    resend.Config
	Storage   storage.Config
	Gallery   gallery.Config
	Contact   contact.Config
	Screening screening.Config
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool { return c.Server.Env == Production }

// Secure reports whether the site is served over HTTPS.
func (c Config) Secure() bool { return strings.HasPrefix(c.Server.BaseURL, "https://") }

// Load reads an optional .env file, then the environment. Variables
// already set win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrLoad, f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad is Load that exits the process on error.
func MustLoad(files ...string) Config {
	cfg, err := Load(files...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

// Validate checks the settings that have no safe default. Secrets are only
// required in production.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Env != Development && c.Server.Env != Production {
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q", Development, Production))
	}
	if u, err := url.Parse(c.Server.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, errors.New("APP_URL must be an absolute URL"))
	}
	if c.Contact.OperatorEmail == "" {
		errs = append(errs, errors.New("CONTACT_OPERATOR_EMAIL is required"))
	}
	if c.Screening.RateLimit < 1 || c.Screening.RateWindow <= 0 {
		errs = append(errs, errors.New("SCREENING_RATE_LIMIT and SCREENING_RATE_WINDOW must be positive"))
	}
	for name, mode := range map[string]screening.Mode{
		"SCREENING_SHIELD_MODE":     c.Screening.ShieldMode,
		"SCREENING_BOT_MODE":        c.Screening.BotMode,
		"SCREENING_EMAIL_MODE":      c.Screening.EmailMode,
		"SCREENING_RATE_LIMIT_MODE": c.Screening.RateLimitMode,
	} {
		if mode != screening.Live && mode != screening.DryRun {
			errs = append(errs, fmt.Errorf("%s must be %q or %q", name, screening.Live, screening.DryRun))
		}
	}

	if c.IsProduction() {
		if len(c.Server.CookieSecret) < 32 {
			errs = append(errs, errors.New("COOKIE_SECRET must be at least 32 bytes in production"))
		}
		if len(c.Server.CSRFKey) != 32 {
			errs = append(errs, errors.New("CSRF_KEY must be exactly 32 bytes in production"))
		}
		if !c.Resend.Enabled() {
			errs = append(errs, errors.New("RESEND_API_KEY is required in production"))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
