package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header parsed per request.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage returns the entry of available that best matches the
// Accept-Language header, or the first available language when nothing
// matches. Matching follows BCP 47 rules, so "fr-CA" selects "fr".
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" {
		return available[0]
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return available[0]
	}

	supported := make([]language.Tag, 0, len(available))
	for _, a := range available {
		supported = append(supported, language.Make(a))
	}

	_, idx, conf := language.NewMatcher(supported).Match(desired...)
	if conf == language.No {
		return available[0]
	}
	return available[idx]
}
