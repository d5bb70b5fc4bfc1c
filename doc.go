// Package essencek is the web core of the L'Essence K site: an App built
// on chi, a request Context, functional options and a graceful Run.
// Application packages import it instead of internal.
//
// Handlers implement Handler and return errors:
//
//	type Contact struct {
//		service *contact.Service
//	}
//
//	func (h *Contact) Routes(r essencek.Router) {
//		r.GET("/{locale}/contact", h.show)
//		r.POST("/{locale}/contact", h.submit)
//	}
//
// Errors go to the ErrorHandler given to WithErrorHandler. htmx requests
// always receive a 200 so that htmx swaps error fragments.
//
// Run blocks until SIGINT or SIGTERM, then stops the server and runs the
// shutdown hooks in order:
//
//	err := app.Run(cfg.Addr,
//		essencek.StartupHook(domains.Start),
//		essencek.ShutdownHook(domains.Stop),
//		essencek.ShutdownHook(logger.SentryFlush(2*time.Second)),
//	)
package essencek
