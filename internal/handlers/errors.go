package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jordanlepera/essencek"
	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/internal/views"
	"github.com/jordanlepera/essencek/middlewares"
	"github.com/jordanlepera/essencek/pkg/i18n"
)

// errorKeys maps a status to the translation prefix of its page.
var errorKeys = map[int]string{
	http.StatusBadRequest:          "errors.bad_request",
	http.StatusForbidden:           "errors.forbidden",
	http.StatusNotFound:            "errors.not_found",
	http.StatusMethodNotAllowed:    "errors.method_not_allowed",
	http.StatusServiceUnavailable:  "errors.unavailable",
	http.StatusInternalServerError: "errors.internal",
}

func errorContent(code int) views.ErrorData {
	prefix, ok := errorKeys[code]
	if !ok {
		prefix = "errors.internal"
		if code < http.StatusInternalServerError {
			prefix = "errors.bad_request"
		}
	}
	return views.ErrorData{Code: code, TitleKey: prefix + ".title", DetailKey: prefix + ".detail"}
}

// statusOfError maps a handler error to a status.
func statusOfError(err error) int {
	if middlewares.IsTimeoutError(err) {
		return http.StatusServiceUnavailable
	}
	if herr := essencek.AsHTTPError(err); herr != nil {
		return herr.StatusCode()
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders handler errors as translated error pages. Server
// errors are logged with their cause.
func (s *Site) ErrorHandler(c essencek.Context, err error) error {
	code := statusOfError(err)
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Int("status", code), slog.String("error", err.Error()))
	}

	content := errorContent(code)
	data := s.page(c, s.errorPath(c), content.TitleKey, content.DetailKey, content)
	return s.render(c, code, "error", data)
}

// errorPath keeps the language switch on the failing page when its locale
// is known.
func (s *Site) errorPath(c essencek.Context) string {
	p := c.Request().URL.Path
	if lang := middlewares.LocaleFromPath(p); s.Supports(lang) {
		if rest := p[len(lang)+1:]; rest != "" {
			return rest
		}
	}
	return "/accueil"
}

// NotFound is the handler of unmatched routes.
func (s *Site) NotFound(essencek.Context) error {
	return essencek.ErrNotFound("page not found")
}

// MethodNotAllowed is the handler of unsupported methods.
func (s *Site) MethodNotAllowed(essencek.Context) error {
	return essencek.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed")
}

// CSRFFailure serves requests rejected by the CSRF middleware. It runs
// before the app middlewares, so it resolves the language itself. htmx
// posts of the contact form get the form back with a security error, since
// htmx does not swap 403 responses.
func (s *Site) CSRFFailure(svc *i18n.I18n, namespace string, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := middlewares.LocaleFromPath(r.URL.Path)
		if !s.Supports(lang) {
			lang = s.languages[0]
		}
		tr := i18n.NewTranslator(svc, lang, namespace)
		log.WarnContext(r.Context(), "csrf check failed",
			slog.String("path", r.URL.Path),
			slog.String("reason", reasonOf(r)),
		)

		data := views.NewPageData(tr, lang, s.languages)
		data.BaseURL = s.baseURL
		data.CSRFField = middlewares.CSRFTemplateField(r)
		data.RequestID = middlewares.RequestIDFromContext(r.Context())
		data.Description = tr.T("meta.description")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.Header.Get("HX-Request") == "true" && r.URL.Path == "/"+lang+"/contact" {
			res := contact.ResultFromError(contact.ErrTransientService).Localize(tr.TranslateMessage)
			data.Path = "/contact"
			data.Content = views.ContactData{Result: &res}
			w.WriteHeader(http.StatusOK)
			if err := s.views.Partial("contact", "contact_form", data).Render(r.Context(), w); err != nil {
				log.ErrorContext(r.Context(), "render csrf failure", slog.String("error", err.Error()))
			}
			return
		}

		content := errorContent(http.StatusForbidden)
		data.Path = "/accueil"
		data.Title = tr.T(content.TitleKey)
		data.Content = content
		w.WriteHeader(http.StatusForbidden)
		if err := s.views.Page("error", data).Render(r.Context(), w); err != nil {
			log.ErrorContext(r.Context(), "render csrf failure", slog.String("error", err.Error()))
		}
	})
}

func reasonOf(r *http.Request) string {
	if err := middlewares.CSRFFailureReason(r); err != nil {
		return err.Error()
	}
	return "unknown"
}
