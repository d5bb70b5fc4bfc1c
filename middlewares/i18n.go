package middlewares

import (
	"strings"

	"github.com/jordanlepera/essencek/internal"
	"github.com/jordanlepera/essencek/pkg/i18n"
)

// LanguageCookie is the cookie remembering the visitor's language.
const LanguageCookie = "lang"

// I18nConfig configures I18n.
type I18nConfig struct {
	Namespace    string
	Extractor    internal.Extractor
	extractorSet bool
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nNamespace sets the namespace of the request translator.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *I18nConfig) { cfg.Namespace = ns }
}

// WithI18nExtractor replaces the language source chain.
func WithI18nExtractor(ext internal.Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// FromPathLocale reads the first path segment, as in /en/contact, when it
// is one of the available languages. Global middlewares run before chi
// matches the route, so the {locale} parameter is not set yet.
func FromPathLocale(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		return matchLanguage(LocaleFromPath(c.Request().URL.Path), available)
	}
}

// LocaleFromPath returns the first segment of p.
func LocaleFromPath(p string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	return seg
}

// FromLanguageCookie reads the lang cookie when it names an available
// language.
func FromLanguageCookie(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		v, err := c.Cookie(LanguageCookie)
		if err != nil {
			return "", false
		}
		return matchLanguage(v, available)
	}
}

// FromAcceptLanguage matches the Accept-Language header against available.
func FromAcceptLanguage(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return i18n.ParseAcceptLanguage(header, available), true
	}
}

func matchLanguage(v string, available []string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, lang := range available {
		if v == lang {
			return lang, true
		}
	}
	return "", false
}

// I18n resolves the visitor's language and stores a Translator and the
// language code in the request context. Sources, first match wins: the
// locale path segment, the lang cookie, Accept-Language. The default
// language applies otherwise.
func I18n(svc *i18n.I18n, opts ...I18nOption) internal.Middleware {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		langs := svc.Languages()
		cfg.Extractor = internal.NewExtractor(
			FromPathLocale(langs),
			FromLanguageCookie(langs),
			FromAcceptLanguage(langs),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok {
				lang = svc.DefaultLanguage()
			}
			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(svc, lang, cfg.Namespace))
			c.Set(internal.LanguageKey{}, lang)
			return next(c)
		}
	}
}

// GetTranslator returns the request translator, or nil without I18n.
func GetTranslator(c internal.Context) *i18n.Translator {
	tr, _ := c.Get(internal.TranslatorKey{}).(*i18n.Translator)
	return tr
}

// languageCookieMaxAge is one year in seconds.
const languageCookieMaxAge = 365 * 24 * 60 * 60

// SetLanguageCookie remembers lang for a year.
func SetLanguageCookie(c internal.Context, lang string) {
	c.SetCookie(LanguageCookie, lang, languageCookieMaxAge)
}
