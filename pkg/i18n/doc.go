// Package i18n serves the site's translated strings.
//
// Translations are nested maps flattened to dotted keys and grouped by
// language and namespace. They are usually loaded from embedded YAML files
// laid out as {lang}/{namespace}.yaml:
//
//	svc, err := i18n.New(
//		i18n.WithDefaultLanguage("fr"),
//		i18n.WithLanguages("fr", "en"),
//		i18n.WithYAMLDir(locales.FS),
//	)
//
//	svc.T("en", "site", "contact.title")                          // "Let's talk about your project"
//	svc.T("fr", "site", "footer.copyright", i18n.M{"year": 2026}) // "{{year}}" replaced
//
// Lookups fall back from "en-GB" to "en" and then to the default language;
// a key missing everywhere is returned unchanged. Translator binds one
// language and namespace for request handlers and its TranslateMessage
// method plugs into validator.ValidationErrors.Translate.
//
// ParseAcceptLanguage picks the best supported language for an
// Accept-Language header using golang.org/x/text/language.
package i18n
