package internal

import "strconv"

type paramValue interface {
	~string | ~int | ~int64 | ~bool
}

// ContextValue returns the request context value stored under key, or the
// zero value of T.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// Param returns the URL parameter name converted to T. Unparsable values
// yield the zero value.
func Param[T paramValue](c Context, name string) T {
	v, _ := parseValue[T](c.Param(name))
	return v
}

// QueryDefault returns the query parameter name converted to T, or def when
// it is absent or unparsable.
func QueryDefault[T paramValue](c Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	if v, ok := parseValue[T](raw); ok {
		return v
	}
	return def
}

func parseValue[T paramValue](raw string) (T, bool) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return out, false
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return out, false
		}
		*p = n
	case *bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, false
		}
		*p = b
	default:
		return out, false
	}
	return out, true
}
