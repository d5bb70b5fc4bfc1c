package screening

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jordanlepera/essencek/pkg/logger"
)

//go:embed disposable_domains.txt
var seedDomains []byte

const defaultMaxListSize = 10 << 20

var (
	// ErrEmptyList is returned when a refresh yields no domain.
	ErrEmptyList = errors.New("screening: empty disposable domain list")
	// ErrListTooLarge is returned when the downloaded list exceeds the size
	// limit. The current set is kept.
	ErrListTooLarge = errors.New("screening: disposable domain list too large")
)

// DomainList is the set of disposable email domains. It is seeded from an
// embedded list and can be refreshed from a remote newline-separated list.
type DomainList struct {
	domains  map[string]struct{}
	client   *http.Client
	logger   *slog.Logger
	source   string
	schedule string
	maxSize  int64
	mu       sync.RWMutex
}

// DomainListOption configures a DomainList.
type DomainListOption func(*DomainList)

// WithSource sets the URL Refresh downloads from.
func WithSource(url string) DomainListOption {
	return func(l *DomainList) { l.source = url }
}

// WithRefreshSchedule sets the cron schedule reported by Schedule.
func WithRefreshSchedule(schedule string) DomainListOption {
	return func(l *DomainList) { l.schedule = schedule }
}

// WithHTTPClient sets the client used by Refresh.
func WithHTTPClient(c *http.Client) DomainListOption {
	return func(l *DomainList) {
		if c != nil {
			l.client = c
		}
	}
}

// WithMaxListSize caps the size in bytes of a downloaded list.
// Default: 10 MiB.
func WithMaxListSize(n int64) DomainListOption {
	return func(l *DomainList) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithListLogger sets the logger.
func WithListLogger(lg *slog.Logger) DomainListOption {
	return func(l *DomainList) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewDomainList returns a list seeded from the embedded domains.
func NewDomainList(opts ...DomainListOption) *DomainList {
	domains, _ := ParseDomains(bytes.NewReader(seedDomains))
	l := &DomainList{
		domains: domains,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.NewNope(),
		maxSize: defaultMaxListSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ParseDomains reads one domain per line. Blank lines and lines starting
// with # are skipped.
func ParseDomains(r io.Reader) (map[string]struct{}, error) {
	domains := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains[strings.TrimSuffix(line, ".")] = struct{}{}
	}
	return domains, sc.Err()
}

// Contains reports whether domain or one of its parent domains is listed.
func (l *DomainList) Contains(domain string) bool {
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")

	l.mu.RLock()
	defer l.mu.RUnlock()

	for domain != "" {
		if _, ok := l.domains[domain]; ok {
			return true
		}
		dot := strings.IndexByte(domain, '.')
		if dot < 0 {
			break
		}
		domain = domain[dot+1:]
	}
	return false
}

// Len returns the number of listed domains.
func (l *DomainList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.domains)
}

// Replace swaps the whole set.
func (l *DomainList) Replace(domains map[string]struct{}) {
	l.mu.Lock()
	l.domains = domains
	l.mu.Unlock()
}

// Refresh downloads the source list and replaces the set, merged with the
// embedded seed. On failure the current set is kept. Without a source it
// is a no-op.
func (l *DomainList) Refresh(ctx context.Context) error {
	if l.source == "" {
		return nil
	}

	domains, err := l.download(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "disposable domain refresh failed, keeping current list",
			slog.String("source", l.source),
			slog.Any("error", err),
		)
		return err
	}

	seed, _ := ParseDomains(bytes.NewReader(seedDomains))
	for d := range seed {
		domains[d] = struct{}{}
	}
	l.Replace(domains)

	l.logger.InfoContext(ctx, "disposable domains refreshed", slog.Int("domains", len(domains)))
	return nil
}

func (l *DomainList) download(ctx context.Context) (map[string]struct{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("screening: disposable list returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > l.maxSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrListTooLarge, l.maxSize)
	}

	domains, err := ParseDomains(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(domains) == 0 {
		return nil, ErrEmptyList
	}
	return domains, nil
}

// Name, Schedule and Handle make the list a job.WithScheduledTask task.
func (l *DomainList) Name() string { return "disposable_domains_refresh" }

// Schedule is empty, and the task skipped, when there is no source.
func (l *DomainList) Schedule() string {
	if l.source == "" {
		return ""
	}
	return l.schedule
}

func (l *DomainList) Handle(ctx context.Context) error { return l.Refresh(ctx) }
