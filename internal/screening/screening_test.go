package screening_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/internal/screening"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	args := m.Called(ctx, name)
	mx, _ := args.Get(0).([]*net.MX)
	return mx, args.Error(1)
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis: connection refused")
}

func (failingCounter) Close() error { return nil }

func request(email string) contact.Screening {
	return contact.Screening{
		Email: email,
		Meta: contact.Meta{
			IP:             "203.0.113.7",
			UserAgent:      chromeUA,
			Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			AcceptLanguage: "fr-FR,fr;q=0.9,en;q=0.8",
		},
	}
}

func offlineConfig() screening.Config {
	cfg := screening.DefaultConfig()
	cfg.CheckMX = false
	return cfg
}

func TestScreener_AllowsRegularVisitor(t *testing.T) {
	t.Parallel()

	resolver := &mockResolver{}
	resolver.On("LookupMX", mock.Anything, "b.com").Return([]*net.MX{{Host: "mx.b.com.", Pref: 10}}, nil).Once()

	s := screening.New(screening.DefaultConfig(), screening.WithResolver(resolver))
	t.Cleanup(func() { _ = s.Close() })

	decision, err := s.Screen(context.Background(), request("a@b.com"))
	require.NoError(t, err)
	assert.Equal(t, contact.Allow, decision)
	resolver.AssertExpectations(t)
}

func TestShield(t *testing.T) {
	t.Parallel()

	s := screening.New(offlineConfig())
	t.Cleanup(func() { _ = s.Close() })

	tests := []struct {
		name   string
		mutate func(*contact.Screening)
	}{
		{"sql in email", func(in *contact.Screening) { in.Email = "a@b.com' OR '1'='1" }},
		{"union select in user agent", func(in *contact.Screening) { in.Meta.UserAgent = chromeUA + " UNION SELECT password FROM users" }},
		{"encoded script", func(in *contact.Screening) { in.Meta.AcceptLanguage = "%3Cscript%3Ealert(1)%3C/script%3E" }},
		{"path traversal", func(in *contact.Screening) { in.Meta.Accept = "../../etc/passwd" }},
		{"null byte", func(in *contact.Screening) { in.Email = "a@b.com%00" }},
		{"sleep", func(in *contact.Screening) { in.Meta.UserAgent = "Mozilla/5.0 sleep(5)" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := request("a@b.com")
			tt.mutate(&in)
			decision, err := s.Screen(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, contact.DenyOther, decision)
		})
	}
}

func TestBot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		userAgent string
		honeypot  string
		want      contact.Decision
	}{
		{"browser", chromeUA, "", contact.Allow},
		{"firefox mobile", "Mozilla/5.0 (Android 14; Mobile; rv:126.0) Gecko/126.0 Firefox/126.0", "", contact.Allow},
		{"phone brand ending in bot", "Mozilla/5.0 (Linux; Android 12; CUBOT X50 Build/SP1A.210812.016) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36", "", contact.Allow},
		{"no user agent", "", "", contact.DenyBot},
		{"curl", "curl/8.5.0", "", contact.DenyBot},
		{"python", "python-requests/2.31.0", "", contact.DenyBot},
		{"go client", "Go-http-client/1.1", "", contact.DenyBot},
		{"search engine", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "", contact.DenyBot},
		{"bing", "Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)", "", contact.DenyBot},
		{"generic bot word", "Some Bot", "", contact.DenyBot},
		{"headless", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 HeadlessChrome/126.0.0.0 Safari/537.36", "", contact.DenyBot},
		{"honeypot", chromeUA, "https://spam.example", contact.DenyBot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := request("a@b.com")
			in.Meta.UserAgent = tt.userAgent
			in.Meta.Honeypot = tt.honeypot

			decision, err := screening.Bot{}.Check(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decision)
		})
	}
}

func TestEmail_Policy(t *testing.T) {
	t.Parallel()

	s := screening.New(offlineConfig())
	t.Cleanup(func() { _ = s.Close() })

	for _, email := range []string{
		"not-an-email",
		"a@",
		"someone@mailinator.com",
		"someone@YOPMAIL.fr",
		"someone@inbox.guerrillamail.com",
	} {
		t.Run(email, func(t *testing.T) {
			t.Parallel()
			decision, err := s.Screen(context.Background(), request(email))
			require.NoError(t, err)
			assert.Equal(t, contact.DenyInvalidEmail, decision)
		})
	}
}

func TestEmail_MXRecords(t *testing.T) {
	t.Parallel()

	resolver := &mockResolver{}
	resolver.On("LookupMX", mock.Anything, "good.fr").Return([]*net.MX{{Host: "mx1.good.fr."}}, nil).Once()
	resolver.On("LookupMX", mock.Anything, "nullmx.fr").Return([]*net.MX{{Host: "."}}, nil).Once()
	resolver.On("LookupMX", mock.Anything, "nowhere.fr").
		Return(nil, &net.DNSError{Err: "no such host", Name: "nowhere.fr", IsNotFound: true}).Once()
	resolver.On("LookupMX", mock.Anything, "flaky.fr").
		Return(nil, &net.DNSError{Err: "server misbehaving", Name: "flaky.fr", IsTemporary: true})

	s := screening.New(screening.DefaultConfig(), screening.WithResolver(resolver))
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	t.Run("usable mx is cached", func(t *testing.T) {
		for range 3 {
			decision, err := s.Screen(ctx, request("atelier@good.fr"))
			require.NoError(t, err)
			assert.Equal(t, contact.Allow, decision)
		}
	})

	t.Run("null mx", func(t *testing.T) {
		decision, err := s.Screen(ctx, request("x@nullmx.fr"))
		require.NoError(t, err)
		assert.Equal(t, contact.DenyInvalidEmail, decision)
	})

	t.Run("unknown domain", func(t *testing.T) {
		decision, err := s.Screen(ctx, request("x@nowhere.fr"))
		require.NoError(t, err)
		assert.Equal(t, contact.DenyInvalidEmail, decision)
	})

	t.Run("temporary dns failure is an error", func(t *testing.T) {
		decision, err := s.Screen(ctx, request("x@flaky.fr"))
		require.ErrorIs(t, err, screening.ErrUnavailable)
		assert.Equal(t, contact.DecisionUnknown, decision)
	})

	resolver.AssertNumberOfCalls(t, "LookupMX", 4)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	s := screening.New(offlineConfig())
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	for i := range 5 {
		decision, err := s.Screen(ctx, request("a@b.com"))
		require.NoError(t, err)
		require.Equal(t, contact.Allow, decision, "attempt %d", i+1)
	}

	decision, err := s.Screen(ctx, request("a@b.com"))
	require.NoError(t, err)
	assert.Equal(t, contact.DenyRateLimited, decision)

	other := request("a@b.com")
	other.Meta.IP = "198.51.100.20"
	decision, err = s.Screen(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, contact.Allow, decision)
}

func TestRateLimit_BackendFailure(t *testing.T) {
	t.Parallel()

	t.Run("fail closed", func(t *testing.T) {
		t.Parallel()
		s := screening.New(offlineConfig(), screening.WithCounter(failingCounter{}))
		_, err := s.Screen(context.Background(), request("a@b.com"))
		assert.ErrorIs(t, err, screening.ErrUnavailable)
	})

	t.Run("fail open", func(t *testing.T) {
		t.Parallel()
		cfg := offlineConfig()
		cfg.RateFailOpen = true
		s := screening.New(cfg, screening.WithCounter(failingCounter{}))
		decision, err := s.Screen(context.Background(), request("a@b.com"))
		require.NoError(t, err)
		assert.Equal(t, contact.Allow, decision)
	})
}

func TestDryRun(t *testing.T) {
	t.Parallel()

	cfg := offlineConfig()
	cfg.BotMode = screening.DryRun
	s := screening.New(cfg)
	t.Cleanup(func() { _ = s.Close() })

	in := request("a@b.com")
	in.Meta.UserAgent = "curl/8.5.0"
	decision, err := s.Screen(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, contact.Allow, decision)

	in.Email = "a@mailinator.com"
	decision, err = s.Screen(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, contact.DenyInvalidEmail, decision)
}

func TestScreener_FirstDenialWins(t *testing.T) {
	t.Parallel()

	s := screening.New(offlineConfig())
	t.Cleanup(func() { _ = s.Close() })

	in := request("a@mailinator.com")
	in.Meta.UserAgent = "curl/8.5.0 <script>"
	decision, err := s.Screen(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, contact.DenyOther, decision)

	in.Meta.UserAgent = "curl/8.5.0"
	decision, err = s.Screen(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, contact.DenyBot, decision)
}
