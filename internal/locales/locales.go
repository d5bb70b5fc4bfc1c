// Package locales embeds the site translations, one directory per language.
package locales

import "embed"

//go:embed fr en
var FS embed.FS

// Namespace is the translation namespace of the site.
const Namespace = "site"

// Default is the default language.
const Default = "fr"

// Languages are the supported languages, default first.
var Languages = []string{"fr", "en"}
