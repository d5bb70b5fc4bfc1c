package middlewares

import (
	"strings"

	"github.com/crewjam/csp"

	"github.com/jordanlepera/essencek/internal"
)

// SecurityConfig configures SecurityHeaders.
type SecurityConfig struct {
	// HSTS is sent only when true, so plain HTTP development is unaffected.
	HSTS bool
	// ImageSources are extra img-src origins, such as the gallery bucket.
	ImageSources []string
	// ScriptSources are extra script-src origins, such as the htmx CDN.
	ScriptSources []string
}

// ContentSecurityPolicy builds the site policy.
func ContentSecurityPolicy(cfg SecurityConfig) string {
	header := csp.Header{
		DefaultSrc: []string{"'self'"},
		ScriptSrc:  append([]string{"'self'"}, cfg.ScriptSources...),
		StyleSrc:   []string{"'self'"},
		ImgSrc:     append([]string{"'self'", "data:"}, cfg.ImageSources...),
		ObjectSrc:  []string{"'none'"},
	}.String()

	return strings.Join([]string{
		strings.TrimSuffix(strings.TrimSpace(header), ";"),
		"frame-ancestors 'none'",
		"form-action 'self'",
		"base-uri 'self'",
	}, "; ")
}

// SecurityHeaders sets the browser hardening headers on every response.
func SecurityHeaders(cfg SecurityConfig) internal.Middleware {
	policy := ContentSecurityPolicy(cfg)
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.SetHeader("Content-Security-Policy", policy)
			c.SetHeader("X-Content-Type-Options", "nosniff")
			c.SetHeader("X-Frame-Options", "DENY")
			c.SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")
			c.SetHeader("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
			c.SetHeader("Cross-Origin-Opener-Policy", "same-origin")
			if cfg.HSTS {
				c.SetHeader("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			return next(c)
		}
	}
}
