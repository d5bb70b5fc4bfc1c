package binder

import "errors"

var (
	ErrInvalidTarget      = errors.New("binder: target must be a non-nil pointer to a struct")
	ErrUnsupportedType    = errors.New("binder: unsupported field type")
	ErrInvalidValue       = errors.New("binder: invalid field value")
	ErrParseForm          = errors.New("binder: failed to parse form")
	ErrInvalidJSON        = errors.New("binder: invalid json body")
	ErrUnsupportedContent = errors.New("binder: unsupported content type")
)
