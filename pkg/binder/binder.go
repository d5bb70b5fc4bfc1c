package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

const maxMemory = 10 << 20

// Form binds the URL-encoded or multipart request body using `form` tags.
func Form() func(*http.Request, any) error {
	return func(r *http.Request, v any) error {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		var err error
		if ct == "multipart/form-data" {
			err = r.ParseMultipartForm(maxMemory)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return errors.Join(ErrParseForm, err)
		}
		return bindValues(r.PostForm, "form", v)
	}
}

// Query binds URL query parameters using `query` tags.
func Query() func(*http.Request, any) error {
	return func(r *http.Request, v any) error {
		return bindValues(r.URL.Query(), "query", v)
	}
}

// JSON decodes a JSON request body into v. Unknown fields are rejected.
func JSON() func(*http.Request, any) error {
	return func(r *http.Request, v any) error {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct != "application/json" {
			return fmt.Errorf("%w: %q", ErrUnsupportedContent, ct)
		}
		dec := json.NewDecoder(io.LimitReader(r.Body, maxMemory))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return errors.Join(ErrInvalidJSON, err)
		}
		return nil
	}
}

func bindValues(values url.Values, tagName string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := setField(rv.Field(i), raw); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw []string) error {
	if fv.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(fv.Type(), len(raw), len(raw))
		for i, s := range raw {
			if err := setScalar(slice.Index(i), s); err != nil {
				return err
			}
		}
		fv.Set(slice)
		return nil
	}
	return setScalar(fv, raw[0])
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		if s == "" {
			fv.SetBool(false)
			return nil
		}
		if s == "on" {
			fv.SetBool(true)
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return errors.Join(ErrInvalidValue, err)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return errors.Join(ErrInvalidValue, err)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, fv.Type().Bits())
		if err != nil {
			return errors.Join(ErrInvalidValue, err)
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return errors.Join(ErrInvalidValue, err)
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, fv.Kind())
	}
	return nil
}
