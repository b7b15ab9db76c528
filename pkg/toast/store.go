package toast

import (
	"net/http"
	"strings"
)

// Store carries messages from the request that issued a redirect to the
// request that renders the redirect target.
//
// Put overwrites any unconsumed value for the client scope; putting an empty
// list clears it. Take returns the stored list and clears the slot in the same
// operation, so a value is observed by at most one reader. Both must degrade
// to "nothing stored" when the client has no scope (for example no cookies).
type Store interface {
	Put(w http.ResponseWriter, r *http.Request, msgs []Message) error
	Take(w http.ResponseWriter, r *http.Request) ([]Message, error)
}

// dropSetCookie removes Set-Cookie lines already queued for name so the
// response carries a single instruction per cookie.
func dropSetCookie(h http.Header, name string) {
	lines := h.Values("Set-Cookie")
	if len(lines) == 0 {
		return
	}

	prefix := name + "="
	kept := lines[:0:0]
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
		}
	}

	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
}
