package middlewares

import (
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/jordanlepera/essencek/internal"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "_csrf"

// CSRFConfig configures CSRF.
type CSRFConfig struct {
	// Key is the 32-byte authentication key.
	Key []byte
	// Secure marks the cookie Secure and enforces the strict TLS referer
	// checks. Off in development over plain HTTP.
	Secure bool
	// TrustedOrigins lists extra hosts allowed in Origin and Referer.
	TrustedOrigins []string
	// ErrorHandler serves rejected requests. Defaults to a plain 403.
	ErrorHandler http.Handler
}

// CSRF returns gorilla/csrf protection for form posts. Register it with
// essencek.WithHTTPMiddleware so the token is in every request context.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.Secure(cfg.Secure),
		csrf.FieldName(CSRFFieldName),
		csrf.CookieName("_essencek_csrf"),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	}
	protect := csrf.Protect(cfg.Key, opts...)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if cfg.Secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

// CSRFField returns the hidden input for forms rendered in this request.
func CSRFField(c internal.Context) template.HTML {
	return CSRFTemplateField(c.Request())
}

// CSRFTemplateField is CSRFField for plain http handlers, such as the CSRF
// ErrorHandler.
func CSRFTemplateField(r *http.Request) template.HTML {
	return csrf.TemplateField(r)
}

// CSRFToken returns the masked token, for the X-CSRF-Token header of htmx
// requests.
func CSRFToken(c internal.Context) string {
	return csrf.Token(c.Request())
}

// CSRFFailureReason explains a rejection inside a custom ErrorHandler.
func CSRFFailureReason(r *http.Request) error {
	return csrf.FailureReason(r)
}
