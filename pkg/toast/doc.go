// Package toast collects user-facing toast notifications raised while a
// request is handled and delivers them to the browser.
//
// Messages reach the client in one of three ways:
//
//   - On a full page response the view layer reads them with Messages and
//     renders them (see the renderer subpackage).
//   - On a background request, recognised by a Marker, they are encoded into
//     a response header that the client script reads.
//   - When a handler redirects, messages added with AfterRedirect are written
//     to a Store and shown on the page the client lands on.
//
// # Architecture
//
// Manager.Middleware attaches a Container to the request context. The
// container combines a request-scoped Accessor with a Store. The store is
// taken at most once per request and its messages come first, followed by the
// messages added during the request, in insertion order.
//
// Delivery decisions are made when the handler commits the response headers.
// At that point the middleware knows the status code and the content type,
// so it can persist pending messages for a redirect, stamp the response
// header, or consume the store for a page that will render it.
//
//	┌─────────┐  Add    ┌───────────┐  Take/Put  ┌───────┐
//	│ Handler │ ──────► │ Container │ ─────────► │ Store │ (cookie, memory, redis, …)
//	└─────────┘         └───────────┘            └───────┘
//	                          │
//	                          ▼
//	            header on background responses
//
// # Usage
//
//	cookies, _ := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	manager := toast.New(toast.NewCookieStore(cookies, "", 5*time.Minute),
//	    toast.WithLogger(log),
//	)
//	http.ListenAndServe(":8080", manager.Middleware(mux))
//
//	func save(w http.ResponseWriter, r *http.Request) {
//	    toast.Success(r.Context(), "Saved", toast.AfterRedirect())
//	    http.Redirect(w, r, "/", http.StatusSeeOther)
//	}
//
// Stores implement Put and Take. CookieStore keeps an encrypted cookie on the
// client. ServerStore keeps the list in a Backend addressed by a signed scope
// cookie; MemoryBackend ships here and the flashstore package provides Redis,
// PostgreSQL and MongoDB backends.
//
// # Error Handling
//
// Delivery never fails the response. Store and encoding failures are logged
// and reported to the Observer as EventFailed, and so are panics raised while
// delivering.
// The sentinel errors support errors.Is.
package toast
