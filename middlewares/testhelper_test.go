package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/jordanlepera/essencek/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// serve runs req through an app with mws around h, mounted on every path.
// Handler errors are written as "status: message" by a minimal error
// handler.
func serve(req *http.Request, h internal.HandlerFunc, mws ...internal.Middleware) *httptest.ResponseRecorder {
	app := internal.New(
		internal.WithMiddleware(mws...),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			return c.String(http.StatusInternalServerError, err.Error())
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/*", h)
			r.POST("/*", h)
		})),
	)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func ok(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}
