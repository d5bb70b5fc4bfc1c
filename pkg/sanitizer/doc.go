// Package sanitizer cleans user input before it is validated or rendered.
//
// HTML helpers are backed by bluemonday: StripHTML removes all markup and
// SanitizeHTML keeps a small set of formatting tags.
//
// SanitizeStruct applies the comma-separated operations listed in a field's
// `sanitize` tag, left to right:
//
//	type ContactForm struct {
//		Email   string `form:"email" sanitize:"trim,email"`
//		Phone   string `form:"phone" sanitize:"trim,single_line"`
//		Message string `form:"message" sanitize:"text,trim"`
//	}
//
// Supported operations: trim, lower, upper, email, text (strip all HTML),
// html (safe HTML), single_line, collapse_space.
package sanitizer
