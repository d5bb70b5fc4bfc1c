package screening

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/jordanlepera/essencek/internal/contact"
)

var attackPatterns = []*regexp.Regexp{
	// SQL injection
	regexp.MustCompile(`(?i)\bunion\b[\s\S]*\bselect\b`),
	regexp.MustCompile(`(?i)\b(drop|truncate|alter)\s+table\b`),
	regexp.MustCompile(`(?i)\binsert\s+into\b`),
	regexp.MustCompile(`(?i)'\s*(or|and)\s+'?\w+'?\s*=\s*'?\w`),
	regexp.MustCompile(`(?i)\b(sleep|benchmark|pg_sleep)\s*\(`),
	regexp.MustCompile(`;\s*--|'\s*--`),
	// Script and markup injection
	regexp.MustCompile(`(?i)<\s*/?\s*(script|iframe|object|embed|svg|img)\b`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon(error|load|click|mouseover|focus)\s*=`),
	// Path traversal
	regexp.MustCompile(`\.\.[/\\]`),
}

// Shield denies submissions carrying attack payloads in the email or the
// request headers.
type Shield struct{}

func (Shield) Name() string { return "shield" }

func (Shield) Check(_ context.Context, s contact.Screening) (contact.Decision, error) {
	for _, v := range []string{s.Email, s.Meta.UserAgent, s.Meta.Accept, s.Meta.AcceptLanguage} {
		if suspicious(v) {
			return contact.DenyOther, nil
		}
	}
	return contact.Allow, nil
}

func suspicious(v string) bool {
	if v == "" {
		return false
	}
	if decoded, err := url.QueryUnescape(v); err == nil {
		v = decoded
	}
	if strings.ContainsRune(v, 0) {
		return true
	}
	for _, re := range attackPatterns {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}
