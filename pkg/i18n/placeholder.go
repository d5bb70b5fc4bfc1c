package i18n

import (
	"fmt"
	"strings"
)

// ReplacePlaceholders substitutes {{name}} tokens with values from placeholders.
// Unknown tokens are left in place.
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}
	result := template
	for key, value := range placeholders {
		result = strings.ReplaceAll(result, "{{"+key+"}}", fmt.Sprint(value))
	}
	return result
}
