package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jordanlepera/essencek/pkg/binder"
	"github.com/jordanlepera/essencek/pkg/cookie"
	"github.com/jordanlepera/essencek/pkg/htmx"
	"github.com/jordanlepera/essencek/pkg/i18n"
	"github.com/jordanlepera/essencek/pkg/sanitizer"
	"github.com/jordanlepera/essencek/pkg/validator"
)

// ValidationErrors is a collection of validation errors.
type ValidationErrors = validator.ValidationErrors

// TranslatorKey is the context key of the request *i18n.Translator.
type TranslatorKey struct{}

// LanguageKey is the context key of the resolved language code.
type LanguageKey struct{}

// Component is a renderable template. templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context gives handlers access to the request, the response and the
// per-request helpers. It is also a context.Context delegating to the
// request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a chi URL parameter.
	Param(name string) string
	Query(name string) string
	QueryDefault(name, defaultValue string) string
	Form(name string) string
	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Redirect sends an HX-Redirect for htmx requests and a regular
	// redirect otherwise.
	Redirect(code int, url string) error

	// Error builds an HTTPError to return from the handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	IsHTMX() bool

	// Render writes component as HTML. htmx options only apply to htmx requests.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for htmx requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Bind decodes the form into v, sanitizes it and validates it. Validation
	// failures are returned as ValidationErrors, translated when a
	// translator is present. Other failures are returned as error.
	Bind(v any) (ValidationErrors, error)
	BindQuery(v any) (ValidationErrors, error)

	Written() bool
	ResponseWriter() *ResponseWriter

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)
	Get(key any) any

	// SetContext replaces the request context for the rest of the chain.
	SetContext(ctx context.Context)

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)
	DeleteCookie(name string)
	CookieSigned(name string) (string, error)
	SetCookieSigned(name, value string, maxAge int) error
	CookieEncrypted(name string) (string, error)
	SetCookieEncrypted(name, value string, maxAge int) error

	// Flash reads a one-shot value into dest and clears it.
	Flash(key string, dest any) error
	SetFlash(key string, value any) error

	// T translates key with the translator installed by the I18n
	// middleware. Without one it returns key.
	T(key string, placeholders ...i18n.M) string

	// Language is the language resolved by the I18n middleware.
	Language() string
}

type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}
	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
	}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.response }
func (c *requestContext) Context() context.Context      { return c.request.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string { return chi.URLParam(c.request, name) }
func (c *requestContext) Query(name string) string { return c.request.URL.Query().Get(name) }

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string      { return c.request.FormValue(name) }
func (c *requestContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *requestContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.RedirectWithStatus(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool { return htmx.IsHTMX(c.request) }

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	var cfg *htmx.Config
	if len(opts) > 0 && c.IsHTMX() {
		cfg = htmx.NewConfig(opts...)
		cfg.ApplyHeaders(c.response)
	}

	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)

	ctx := c.request.Context()
	if err := component.Render(ctx, c.response); err != nil {
		return err
	}
	if cfg != nil {
		for _, oob := range cfg.OOBComponents {
			if err := oob.Render(ctx, c.response); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if c.IsHTMX() && !htmx.IsBoosted(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Bind(v any) (ValidationErrors, error) {
	return c.bind(binder.Form(), v, "bind form")
}

func (c *requestContext) BindQuery(v any) (ValidationErrors, error) {
	return c.bind(binder.Query(), v, "bind query")
}

func (c *requestContext) bind(decode func(*http.Request, any) error, v any, label string) (ValidationErrors, error) {
	if err := decode(c.request, v); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}
	err := validator.ValidateStruct(v)
	if err == nil {
		return nil, nil
	}
	if !validator.IsValidationError(err) {
		return nil, fmt.Errorf("validate: %w", err)
	}
	ve := validator.ExtractValidationErrors(err)
	if tr := c.translator(); tr != nil {
		ve.Translate(tr.TranslateMessage)
	}
	return ve, nil
}

func (c *requestContext) Written() bool                   { return c.responseWriter.Written() }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.responseWriter }

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *requestContext) SetContext(ctx context.Context) { c.request = c.request.WithContext(ctx) }

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.cookieManager.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookieManager.SetSigned(c.response, name, value, maxAge)
}

func (c *requestContext) CookieEncrypted(name string) (string, error) {
	return c.cookieManager.GetEncrypted(c.request, name)
}

func (c *requestContext) SetCookieEncrypted(name, value string, maxAge int) error {
	return c.cookieManager.SetEncrypted(c.response, name, value, maxAge)
}

func (c *requestContext) Flash(key string, dest any) error {
	return c.cookieManager.Flash(c.response, c.request, key, dest)
}

func (c *requestContext) SetFlash(key string, value any) error {
	return c.cookieManager.SetFlash(c.response, key, value)
}

func (c *requestContext) translator() *i18n.Translator {
	tr, _ := c.request.Context().Value(TranslatorKey{}).(*i18n.Translator)
	return tr
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if lang, ok := c.request.Context().Value(LanguageKey{}).(string); ok {
		return lang
	}
	if tr := c.translator(); tr != nil {
		return tr.Language()
	}
	return ""
}
