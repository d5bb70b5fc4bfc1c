package validator

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Translation keys used by the built-in rules.
const (
	KeyRequired    = "validation.required"
	KeyMinLength   = "validation.min_length"
	KeyMaxLength   = "validation.max_length"
	KeyExactLength = "validation.exact_length"
	KeyMin         = "validation.min"
	KeyMax         = "validation.max"
	KeyMinItems    = "validation.min_items"
	KeyMaxItems    = "validation.max_items"
	KeyExactItems  = "validation.exact_items"
	KeyEmail       = "validation.email"
	KeyPhone       = "validation.phone"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Numeric is the set of types accepted by the number rules.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Apply evaluates rules in order and returns ValidationErrors for every failed rule.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check == nil || r.Check() {
			continue
		}
		errs = append(errs, r.Error)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func newRule(field, message, key string, values map[string]any, check func() bool) Rule {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// RequiredString fails when value is empty.
func RequiredString(field, value string) Rule {
	return newRule(field, "is required", KeyRequired, nil, func() bool {
		return value != ""
	})
}

// MinLenString fails when value has fewer than minLen characters.
func MinLenString(field, value string, minLen int) Rule {
	return newRule(field, "must be at least "+strconv.Itoa(minLen)+" characters long", KeyMinLength,
		map[string]any{"min": minLen},
		func() bool { return utf8.RuneCountInString(value) >= minLen })
}

// MaxLenString fails when value has more than maxLen characters.
func MaxLenString(field, value string, maxLen int) Rule {
	return newRule(field, "must not exceed "+strconv.Itoa(maxLen)+" characters", KeyMaxLength,
		map[string]any{"max": maxLen},
		func() bool { return utf8.RuneCountInString(value) <= maxLen })
}

// LenString fails unless value has exactly length characters.
func LenString(field, value string, length int) Rule {
	return newRule(field, "must be exactly "+strconv.Itoa(length)+" characters long", KeyExactLength,
		map[string]any{"length": length},
		func() bool { return utf8.RuneCountInString(value) == length })
}

// Phone fails when value has fewer than minLen characters once all
// whitespace is removed, so "06 00 00 00 00" counts as 10.
func Phone(field, value string, minLen int) Rule {
	return newRule(field, "must contain at least "+strconv.Itoa(minLen)+" characters", KeyPhone,
		map[string]any{"min": minLen},
		func() bool { return utf8.RuneCountInString(StripSpaces(value)) >= minLen })
}

// StripSpaces removes every Unicode whitespace character from s.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// RequiredNum fails when value is the zero value.
func RequiredNum[T Numeric](field string, value T) Rule {
	return newRule(field, "is required", KeyRequired, nil, func() bool {
		return value != 0
	})
}

// MinNum fails when value is less than minVal.
func MinNum[T Numeric](field string, value, minVal T) Rule {
	return newRule(field, "must be at least "+formatNum(minVal), KeyMin,
		map[string]any{"min": minVal},
		func() bool { return value >= minVal })
}

// MaxNum fails when value is greater than maxVal.
func MaxNum[T Numeric](field string, value, maxVal T) Rule {
	return newRule(field, "must not exceed "+formatNum(maxVal), KeyMax,
		map[string]any{"max": maxVal},
		func() bool { return value <= maxVal })
}

// RequiredSlice fails when value is empty.
func RequiredSlice[T any](field string, value []T) Rule {
	return newRule(field, "is required", KeyRequired, nil, func() bool {
		return len(value) > 0
	})
}

// RequiredMap fails when value is empty.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return newRule(field, "is required", KeyRequired, nil, func() bool {
		return len(value) > 0
	})
}

// MinLenSlice fails when value has fewer than minItems elements.
func MinLenSlice[T any](field string, value []T, minItems int) Rule {
	return newRule(field, "must contain at least "+strconv.Itoa(minItems)+" items", KeyMinItems,
		map[string]any{"min": minItems},
		func() bool { return len(value) >= minItems })
}

// MaxLenSlice fails when value has more than maxItems elements.
func MaxLenSlice[T any](field string, value []T, maxItems int) Rule {
	return newRule(field, "must not contain more than "+strconv.Itoa(maxItems)+" items", KeyMaxItems,
		map[string]any{"max": maxItems},
		func() bool { return len(value) <= maxItems })
}

// LenSlice fails unless value has exactly count elements.
func LenSlice[T any](field string, value []T, count int) Rule {
	return newRule(field, "must contain exactly "+strconv.Itoa(count)+" items", KeyExactItems,
		map[string]any{"count": count},
		func() bool { return len(value) == count })
}

func formatNum[T Numeric](v T) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}
