// Package internal holds the web core re-exported by the root essencek
// package: the App, the request Context, routing, errors and the server
// lifecycle. Import "github.com/jordanlepera/essencek" instead.
//
// Handlers implement Handler and return errors instead of writing error
// responses themselves:
//
//	func (h *Contact) submit(c essencek.Context) error {
//		var form contact.Form
//		fieldErrors, err := c.Bind(&form)
//		if err != nil {
//			return err
//		}
//		...
//	}
//
// Context embeds context.Context, so it can be passed straight to services.
//
// Errors returned by handlers and middlewares go to the ErrorHandler set
// with WithErrorHandler. Without one, or when it fails, a plain 500 is
// written unless the response was already started.
//
// For htmx requests the ResponseWriter sends every status as 200 so that
// error fragments are swapped; use RenderPartial to answer htmx requests
// with a fragment and plain requests with the full page.
package internal
