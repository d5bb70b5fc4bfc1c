package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

var (
	ErrInvalidTarget    = errors.New("sanitizer: target must be a non-nil pointer to a struct")
	ErrUnknownOperation = errors.New("sanitizer: unknown operation")
)

var operations = map[string]func(string) string{
	"trim":           strings.TrimSpace,
	"lower":          strings.ToLower,
	"upper":          strings.ToUpper,
	"email":          normalizeEmail,
	"text":           StripHTML,
	"html":           SanitizeHTML,
	"single_line":    singleLine,
	"collapse_space": collapseSpace,
}

// SanitizeStruct rewrites string fields (and string slices) in place
// according to their `sanitize` tags.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		tag := sf.Tag.Get("sanitize")
		if !sf.IsExported() || tag == "" || tag == "-" {
			continue
		}
		ops, err := parseOps(tag)
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}

		fv := rv.Field(i)
		switch {
		case fv.Kind() == reflect.String:
			fv.SetString(apply(fv.String(), ops))
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String:
			for j := range fv.Len() {
				el := fv.Index(j)
				el.SetString(apply(el.String(), ops))
			}
		}
	}
	return nil
}

func parseOps(tag string) ([]func(string) string, error) {
	names := strings.Split(tag, ",")
	ops := make([]func(string) string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		op, ok := operations[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func apply(s string, ops []func(string) string) string {
	for _, op := range ops {
		s = op(s)
	}
	return s
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
