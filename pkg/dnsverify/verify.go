package dnsverify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	ErrDNSLookupFailed = errors.New("dnsverify: dns lookup failed")
	ErrNoMXRecords     = errors.New("dnsverify: domain accepts no mail")
	ErrInvalidInput    = errors.New("dnsverify: invalid domain")
)

// Resolver is the subset of *net.Resolver used for lookups.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Verifier checks whether email domains can receive mail.
type Verifier struct {
	resolver Resolver
}

// New creates a Verifier. A nil resolver uses net.DefaultResolver.
func New(r Resolver) *Verifier {
	if r == nil {
		r = net.DefaultResolver
	}
	return &Verifier{resolver: r}
}

// VerifyMailDomain returns nil when domain publishes at least one usable MX
// record. It returns ErrNoMXRecords when the domain does not exist, has no
// MX records or publishes a null MX ("."). Other resolver failures are
// wrapped in ErrDNSLookupFailed and should be treated as transient.
func (v *Verifier) VerifyMailDomain(ctx context.Context, domain string) error {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if domain == "" || strings.ContainsAny(domain, " @/") {
		return ErrInvalidInput
	}

	records, err := v.resolver.LookupMX(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return ErrNoMXRecords
		}
		return fmt.Errorf("%w: %w", ErrDNSLookupFailed, err)
	}

	for _, mx := range records {
		if host := strings.TrimSuffix(mx.Host, "."); host != "" {
			return nil
		}
	}
	return ErrNoMXRecords
}

// HasMX is VerifyMailDomain reduced to a boolean. Only lookup failures are
// returned as errors.
func (v *Verifier) HasMX(ctx context.Context, domain string) (bool, error) {
	err := v.VerifyMailDomain(ctx, domain)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNoMXRecords), errors.Is(err, ErrInvalidInput):
		return false, nil
	default:
		return false, err
	}
}

// DomainOf returns the lowercased domain part of an email address, or "".
func DomainOf(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}
