package toast

import (
	"net/http"
	"strings"
)

// HTMX and DataStar request/response headers the middleware understands.
const (
	HXRequest  = "HX-Request"
	HXBoosted  = "HX-Boosted"
	HXRedirect = "HX-Redirect"
	HXLocation = "HX-Location"

	dataStarAccept     = "text/event-stream"
	dataStarQueryParam = "datastar"
)

// Marker reports whether a request comes from background client script that
// expects toasts in a response header rather than in the page.
type Marker func(r *http.Request) bool

// HeaderMarker matches requests carrying header name. When value is not
// empty the header must equal it, ignoring case.
func HeaderMarker(name, value string) Marker {
	return func(r *http.Request) bool {
		got := r.Header.Get(name)
		if got == "" {
			return false
		}
		return value == "" || strings.EqualFold(got, value)
	}
}

// HTMXMarker matches htmx requests. Boosted requests are full navigations
// and receive toasts inline.
func HTMXMarker() Marker {
	return func(r *http.Request) bool {
		return r.Header.Get(HXRequest) == "true" && r.Header.Get(HXBoosted) != "true"
	}
}

// DataStarMarker matches DataStar requests: an SSE Accept header or the
// datastar signals query parameter.
func DataStarMarker() Marker {
	return func(r *http.Request) bool {
		if strings.Contains(r.Header.Get("Accept"), dataStarAccept) {
			return true
		}
		return r.URL != nil && r.URL.Query().Has(dataStarQueryParam)
	}
}

// IsRedirect is the default redirect detector: a 3xx status other than
// 304, or an htmx client-side redirect header.
func IsRedirect(status int, h http.Header) bool {
	if status >= 300 && status < 400 && status != http.StatusNotModified {
		return true
	}
	return h.Get(HXRedirect) != "" || h.Get(HXLocation) != ""
}
