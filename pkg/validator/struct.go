package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// KeyOneOf is the translation key for the oneof tag.
const KeyOneOf = "validation.one_of"

// ValidateStruct validates the exported fields of the struct pointed to by v
// using `validate` tags. Rules are separated by semicolons:
//
//	required        non-zero value
//	min:N / max:N   length for strings, item count for slices, value for numbers
//	len:N           exact length or item count
//	email           email grammar
//	oneof:a|b|c     value must be one of the listed strings (empty values pass)
//
// The reported field name is taken from the form, json or query tag, falling
// back to the Go field name.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	var rules []Rule
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}
		fieldRules, err := tagRules(fieldName(sf), rv.Field(i), tag)
		if err != nil {
			return err
		}
		rules = append(rules, fieldRules...)
	}
	return Apply(rules...)
}

func fieldName(sf reflect.StructField) string {
	for _, key := range []string{"form", "json", "query"} {
		if name, _, _ := strings.Cut(sf.Tag.Get(key), ","); name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}

func tagRules(field string, fv reflect.Value, tag string) ([]Rule, error) {
	var rules []Rule
	for part := range strings.SplitSeq(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, arg, _ := strings.Cut(part, ":")
		switch name {
		case "required":
			rules = append(rules, newRule(field, "is required", KeyRequired, nil, func() bool {
				return !fv.IsZero()
			}))
		case "email":
			rules = append(rules, newRule(field, "must be a valid email address", KeyEmail, nil, func() bool {
				s := fv.String()
				return s == "" || IsEmail(s)
			}))
		case "oneof":
			options := strings.Split(arg, "|")
			rules = append(rules, newRule(field, "must be one of "+strings.Join(options, ", "), KeyOneOf,
				map[string]any{"values": strings.Join(options, ", ")},
				func() bool {
					s := fv.String()
					return s == "" || slices.Contains(options, s)
				}))
		case "min", "max", "len":
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("%w: %s on field %s", ErrUnknownTag, part, field)
			}
			r, err := boundRule(field, fv, name, n)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		default:
			return nil, fmt.Errorf("%w: %s on field %s", ErrUnknownTag, name, field)
		}
	}
	return rules, nil
}

func boundRule(field string, fv reflect.Value, name string, n int) (Rule, error) {
	switch fv.Kind() {
	case reflect.String:
		s := fv.String()
		switch name {
		case "min":
			return MinLenString(field, s, n), nil
		case "max":
			return MaxLenString(field, s, n), nil
		default:
			return LenString(field, s, n), nil
		}
	case reflect.Slice, reflect.Array, reflect.Map:
		count := fv.Len()
		switch name {
		case "min":
			return newRule(field, "must contain at least "+strconv.Itoa(n)+" items", KeyMinItems,
				map[string]any{"min": n}, func() bool { return count >= n }), nil
		case "max":
			return newRule(field, "must not contain more than "+strconv.Itoa(n)+" items", KeyMaxItems,
				map[string]any{"max": n}, func() bool { return count <= n }), nil
		default:
			return newRule(field, "must contain exactly "+strconv.Itoa(n)+" items", KeyExactItems,
				map[string]any{"count": n}, func() bool { return count == n }), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numRule(field, float64(fv.Int()), name, n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return numRule(field, float64(fv.Uint()), name, n)
	case reflect.Float32, reflect.Float64:
		return numRule(field, fv.Float(), name, n)
	}
	return Rule{}, fmt.Errorf("%w: %s on %s field %s", ErrUnknownTag, name, fv.Kind(), field)
}

func numRule(field string, value float64, name string, n int) (Rule, error) {
	switch name {
	case "min":
		return MinNum(field, value, float64(n)), nil
	case "max":
		return MaxNum(field, value, float64(n)), nil
	}
	return Rule{}, fmt.Errorf("%w: len on numeric field %s", ErrUnknownTag, field)
}
