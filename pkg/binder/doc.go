// Package binder populates structs from HTTP requests.
//
// Form and Query map url.Values onto exported fields using the `form` and
// `query` struct tags. JSON decodes the request body. Each constructor returns
// a func(*http.Request, any) error so callers can pick a source at runtime:
//
//	type ContactForm struct {
//		Email   string `form:"email"`
//		Message string `form:"message"`
//	}
//
//	var f ContactForm
//	if err := binder.Form()(r, &f); err != nil { ... }
//
// Supported field kinds are string, bool, signed and unsigned integers,
// floats, and slices of those. Fields tagged "-" are skipped.
package binder
