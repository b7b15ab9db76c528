package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"
)

const (
	minSecretLength = 32

	// Browsers cap name, value and attributes together at 4KB.
	maxValueLength = 3800
)

// Manager reads and writes cookies with shared default attributes.
type Manager struct {
	keys     keyring
	defaults Options
}

// New creates a cookie manager. The first secret signs and encrypts, every
// secret is accepted when reading so keys can be rotated.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make(keyring, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		kp, err := deriveKeys(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, kp)
	}

	return &Manager{
		keys:     keys,
		defaults: Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}.apply(opts),
	}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if len(value) > maxValueLength {
		return fmt.Errorf("%w: %d bytes", ErrValueTooLarge, len(value))
	}
	http.SetCookie(w, m.defaults.apply(opts).cookie(name, value))
	return nil
}

// Get returns the raw cookie value or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie on the client. Path and Domain must match the
// ones the cookie was written with, otherwise the browser keeps it.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	c := m.defaults.apply(opts).cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// SetSigned writes value with an HMAC bound to the cookie name, so a value
// signed for one cookie is rejected when replayed under another.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.keys.sign(name, value), opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.keys.verify(name, raw)
}

// SetEncrypted writes value sealed with AES-GCM; the cookie name is the
// additional authenticated data.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	sealed, err := m.keys.seal(name, value)
	if err != nil {
		return err
	}
	return m.Set(w, name, sealed, opts...)
}

func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.keys.open(name, raw)
}

// PopEncrypted reads an encrypted cookie and expires it in the same call.
// A cookie that fails to open is expired too so it is not replayed on
// every following request.
func (m *Manager) PopEncrypted(w http.ResponseWriter, r *http.Request, name string, opts ...Option) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	m.Delete(w, name, opts...)
	return m.keys.open(name, raw)
}
