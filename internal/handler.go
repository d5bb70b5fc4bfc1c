package internal

// Handler declares a group of routes.
//
//	func (h *Contact) Routes(r essencek.Router) {
//		r.GET("/{locale}/contact", h.show)
//		r.POST("/{locale}/contact", h.submit)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A returned error goes to the app's
// ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned by handlers.
type ErrorHandler func(Context, error) error
