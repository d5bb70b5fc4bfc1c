package screening

import (
	"context"
	"time"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/pkg/cache"
	"github.com/jordanlepera/essencek/pkg/dnsverify"
	"github.com/jordanlepera/essencek/pkg/validator"
)

// Email denies invalid addresses, disposable domains and domains that
// cannot receive mail. A DNS failure is an error, never a denial.
type Email struct {
	domains  *DomainList
	verifier *dnsverify.Verifier
	cache    cache.Cache[bool]
	checkMX  bool
	ttl      time.Duration
	timeout  time.Duration
}

func (*Email) Name() string { return "email" }

func (e *Email) Check(ctx context.Context, s contact.Screening) (contact.Decision, error) {
	if !validator.IsEmail(s.Email) {
		return contact.DenyInvalidEmail, nil
	}

	domain := dnsverify.DomainOf(s.Email)
	if domain == "" || e.domains.Contains(domain) {
		return contact.DenyInvalidEmail, nil
	}
	if !e.checkMX {
		return contact.Allow, nil
	}

	ok, err := cache.GetOrSet(ctx, e.cache, "mx:"+domain, func(ctx context.Context) (bool, time.Duration, error) {
		if e.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}
		has, err := e.verifier.HasMX(ctx, domain)
		return has, e.ttl, err
	})
	if err != nil {
		return contact.DecisionUnknown, err
	}
	if !ok {
		return contact.DenyInvalidEmail, nil
	}
	return contact.Allow, nil
}
