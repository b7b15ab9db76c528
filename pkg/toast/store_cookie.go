package toast

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/cookie"
)

// CookieStore keeps pending messages in an encrypted cookie on the client.
// No server state is involved, so concurrent requests of one client may both
// read the cookie before either response clears it; browsers apply the
// responses in arrival order.
type CookieStore struct {
	cookies *cookie.Manager
	name    string
	ttl     time.Duration
}

// NewCookieStore creates a cookie-backed store. A non-positive ttl makes the
// cookie live until the browser session ends.
func NewCookieStore(cookies *cookie.Manager, name string, ttl time.Duration) *CookieStore {
	if cookies == nil {
		panic("toast: cookie manager is required for cookie store")
	}
	if name == "" {
		name = DefaultConfig().FlashCookie
	}
	return &CookieStore{cookies: cookies, name: name, ttl: ttl}
}

// Put implements Store.
func (s *CookieStore) Put(w http.ResponseWriter, r *http.Request, msgs []Message) error {
	dropSetCookie(w.Header(), s.name)

	if len(msgs) == 0 {
		if _, err := r.Cookie(s.name); err == nil {
			s.cookies.Delete(w, s.name)
		}
		return nil
	}

	data, err := Encode(msgs)
	if err != nil {
		return err
	}

	var opts []cookie.Option
	if s.ttl > 0 {
		opts = append(opts, cookie.WithMaxAge(int(s.ttl.Seconds())))
	}

	if err := s.cookies.SetEncrypted(w, s.name, data, opts...); err != nil {
		return errors.Join(ErrSerialization, err)
	}
	return nil
}

// Take implements Store.
func (s *CookieStore) Take(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	data, err := s.cookies.PopEncrypted(w, r, s.name)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return nil, nil
		}
		return nil, errors.Join(ErrSerialization, err)
	}

	return Decode(data)
}
