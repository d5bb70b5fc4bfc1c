package validator

import (
	"errors"
	"strings"
)

// ErrInvalidTarget is returned by ValidateStruct when v is not a pointer to a struct.
var ErrInvalidTarget = errors.New("validator: target must be a non-nil pointer to a struct")

// ErrUnknownTag is returned by ValidateStruct for a tag it does not recognize.
var ErrUnknownTag = errors.New("validator: unknown validation tag")

// ValidationError describes a single failed rule.
type ValidationError struct {
	TranslationValues map[string]any
	Field             string
	Message           string
	TranslationKey    string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the error returned by Apply and ValidateStruct.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// IsEmpty reports whether there are no errors.
func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Has reports whether field has at least one error.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages for field in rule order.
func (ve ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, e := range ve {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// GetErrors returns the full errors for field in rule order.
func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, e := range ve {
		if e.Field == field {
			errs = append(errs, e)
		}
	}
	return errs
}

// Fields groups messages by field name.
func (ve ValidationErrors) Fields() map[string][]string {
	if len(ve) == 0 {
		return nil
	}
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Translate replaces each message in place using fn.
// Errors without a translation key are left untouched. A nil fn is a no-op.
func (ve ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range ve {
		if ve[i].TranslationKey == "" {
			continue
		}
		ve[i].Message = fn(ve[i].TranslationKey, ve[i].TranslationValues)
	}
}

// IsValidationError reports whether err is or wraps ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
