package htmx

import "net/http"

// Response headers.
const (
	HeaderHXLocation   = "HX-Location"
	HeaderHXPushURL    = "HX-Push-Url"
	HeaderHXRedirect   = "HX-Redirect"
	HeaderHXRefresh    = "HX-Refresh"
	HeaderHXReswap     = "HX-Reswap"
	HeaderHXRetarget   = "HX-Retarget"
	HeaderHXTrigger    = "HX-Trigger"
	HeaderHXReplaceURL = "HX-Replace-Url"
)

// Request headers.
const (
	HeaderHXRequest    = "HX-Request"
	HeaderHXBoosted    = "HX-Boosted"
	HeaderHXCurrentURL = "HX-Current-URL"
	HeaderHXTarget     = "HX-Target"
)

// SwapStrategy is an hx-swap value.
type SwapStrategy string

const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapBeforeEnd SwapStrategy = "beforeend"
	SwapNone      SwapStrategy = "none"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost link or form.
// Boosted requests expect a full page.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// Target returns the id of the element htmx will swap into.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// Redirect redirects with 302 Found.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	RedirectWithStatus(w, r, url, http.StatusFound)
}

// RedirectWithStatus redirects regular requests with status and htmx
// requests with an HX-Redirect header on a 200 response, since htmx does
// not follow 3xx responses into the swap.
func RedirectWithStatus(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
