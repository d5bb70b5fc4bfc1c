package screening

import (
	"context"
	"regexp"
	"strings"

	"github.com/jordanlepera/essencek/internal/contact"
)

// botSignatures matches crawler tokens such as Googlebot/2.1 or a
// standalone "bot" word, not device names that end in "bot".
var botSignatures = regexp.MustCompile(`(?i)` +
	`curl/|wget/|python-requests|python-urllib|aiohttp|go-http-client|java/|okhttp|` +
	`axios/|node-fetch|undici|libwww-perl|httpclient|scrapy|` +
	`headlesschrome|phantomjs|selenium|puppeteer|playwright|` +
	`[a-z]*bot/|(?:^|[^a-z])bot\b|crawl|spider|slurp`)

// Bot denies automated clients: no User-Agent, a known automation
// signature or a filled honeypot field. No bot is allowed, search engines
// included.
type Bot struct{}

func (Bot) Name() string { return "bot" }

func (Bot) Check(_ context.Context, s contact.Screening) (contact.Decision, error) {
	ua := strings.TrimSpace(s.Meta.UserAgent)
	switch {
	case s.Meta.Honeypot != "":
		return contact.DenyBot, nil
	case ua == "":
		return contact.DenyBot, nil
	case botSignatures.MatchString(ua):
		return contact.DenyBot, nil
	}
	return contact.Allow, nil
}
