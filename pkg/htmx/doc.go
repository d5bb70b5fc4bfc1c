// Package htmx holds the request and response helpers used by progressively
// enhanced forms and navigation.
//
// A form posted with hx-post receives only the fragment it swaps. The same
// handler serves plain browsers a full page or a redirect:
//
//	if htmx.IsHTMX(r) && !htmx.IsBoosted(r) {
//		// render the partial, optionally with htmx.WithTrigger("contact:sent")
//	}
//
// RedirectWithStatus turns redirects into HX-Redirect headers for htmx
// requests.
package htmx
