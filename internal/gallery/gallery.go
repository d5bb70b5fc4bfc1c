// Package gallery lists the workshop's realisations by service category.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jordanlepera/essencek/pkg/cache"
	"github.com/jordanlepera/essencek/pkg/logger"
)

// Categories are the service slugs, in display order.
var Categories = []string{"dressing", "kustom", "mansarde", "mobilier", "placard", "salledebain"}

// ErrUnknownCategory is returned for a category outside Categories.
var ErrUnknownCategory = errors.New("gallery: unknown category")

// Image is one photo of a realisation.
type Image struct {
	URL      string `json:"url" yaml:"url"`
	Alt      string `json:"alt" yaml:"alt"`
	Category string `json:"category" yaml:"-"`
}

// Group is the images of one category.
type Group struct {
	Category string
	Images   []Image
}

// Source lists the images of one category.
type Source interface {
	Images(ctx context.Context, category string) ([]Image, error)
}

// Config is parsed from the environment.
type Config struct {
	Prefix   string        `env:"GALLERY_PREFIX" envDefault:"realisations/"`
	CacheTTL time.Duration `env:"GALLERY_CACHE_TTL" envDefault:"10m"`
}

// Service caches listings from a Source.
type Service struct {
	source Source
	cache  cache.Cache[[]Image]
	logger *slog.Logger
	ttl    time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service over source. A nil cache disables caching.
func NewService(source Source, c cache.Cache[[]Image], cfg Config, opts ...Option) *Service {
	s := &Service{source: source, cache: c, ttl: cfg.CacheTTL, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsCategory reports whether category is a known slug.
func IsCategory(category string) bool { return slices.Contains(Categories, category) }

// Images returns the images of category.
func (s *Service) Images(ctx context.Context, category string) ([]Image, error) {
	if !IsCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if s.cache == nil {
		return s.source.Images(ctx, category)
	}
	return cache.GetOrSet(ctx, s.cache, "gallery:"+category, func(ctx context.Context) ([]Image, time.Duration, error) {
		images, err := s.source.Images(ctx, category)
		return images, s.ttl, err
	})
}

// Groups returns the non-empty categories, or only category when it is
// set. A failing category is logged and skipped.
func (s *Service) Groups(ctx context.Context, category string) ([]Group, error) {
	categories := Categories
	if category != "" {
		if !IsCategory(category) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		categories = []string{category}
	}

	var groups []Group
	for _, c := range categories {
		images, err := s.Images(ctx, c)
		if err != nil {
			s.logger.WarnContext(ctx, "gallery listing failed",
				slog.String("category", c),
				slog.Any("error", err),
			)
			continue
		}
		if len(images) > 0 {
			groups = append(groups, Group{Category: c, Images: images})
		}
	}
	return groups, nil
}
