package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "fr"

// M holds placeholder values.
type M = map[string]any

// I18n stores flattened translations keyed by language, namespace and dotted key.
// It is read-only after New and safe for concurrent use.
type I18n struct {
	translations      map[string]string // "lang:namespace:key.path"
	missingKeyHandler func(lang, namespace, key string)
	defaultLang       string
	languages         []string
}

// Option configures an I18n during New.
type Option func(*I18n) error

// New builds an I18n from opts.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("i18n: apply option: %w", err)
		}
	}
	if len(i.languages) == 0 {
		i.languages = []string{i.defaultLang}
	}
	return i, nil
}

// WithDefaultLanguage sets the fallback language. Apply it before WithLanguages.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages. The default language is
// always listed first, the others follow in alphabetical order.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		others := make([]string, 0, len(langs))
		for _, l := range langs {
			if l != "" && l != i.defaultLang && !slices.Contains(others, l) {
				others = append(others, l)
			}
		}
		slices.Sort(others)
		i.languages = append([]string{i.defaultLang}, others...)
		return nil
	}
}

// WithTranslations registers a nested translation map for lang and namespace.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a callback for keys missing in every fallback language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T translates key for lang, falling back to the base language ("en" for
// "en-GB") and then the default language. Missing keys are returned as is.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	for _, l := range i.fallbacks(lang) {
		if tr, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return replacePlaceholdersWithMerge(tr, placeholders...)
		}
	}
	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Has reports whether key exists for lang or one of its fallbacks.
func (i *I18n) Has(lang, namespace, key string) bool {
	for _, l := range i.fallbacks(lang) {
		if _, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return true
		}
	}
	return false
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Supports reports whether lang is one of the configured languages.
func (i *I18n) Supports(lang string) bool {
	return slices.Contains(i.languages, lang)
}

func (i *I18n) fallbacks(lang string) []string {
	chain := []string{lang}
	if base := baseLanguage(lang); base != lang {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, i.defaultLang) {
		chain = append(chain, i.defaultLang)
	}
	return chain
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		case []any:
			for idx, item := range v {
				result[fmt.Sprintf("%s.%d", fullKey, idx)] = fmt.Sprint(item)
			}
		default:
			result[fullKey] = fmt.Sprint(v)
		}
	}
	return result
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}

// baseLanguage strips the region: "en-GB" becomes "en".
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
