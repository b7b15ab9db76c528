package toast

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/cookie"
)

// Backend persists encoded message lists server-side.
// Pop must read and remove the value atomically and return nil data when
// the key does not exist or has expired.
type Backend interface {
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Pop(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

const keyPrefix = "toast:flash:"

// ServerStore keeps messages in a Backend keyed by a client scope id. The id
// is a random UUID held in a signed cookie and created on the first Put.
type ServerStore struct {
	backend     Backend
	cookies     *cookie.Manager
	scopeCookie string
	ttl         time.Duration
}

// NewServerStore creates a store backed by b. ttl bounds how long an unread
// list is kept.
func NewServerStore(b Backend, cookies *cookie.Manager, scopeCookie string, ttl time.Duration) *ServerStore {
	if b == nil {
		panic("toast: backend is required for server store")
	}
	if cookies == nil {
		panic("toast: cookie manager is required for server store")
	}
	if scopeCookie == "" {
		scopeCookie = DefaultConfig().ScopeCookie
	}
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &ServerStore{backend: b, cookies: cookies, scopeCookie: scopeCookie, ttl: ttl}
}

// Put implements Store.
func (s *ServerStore) Put(w http.ResponseWriter, r *http.Request, msgs []Message) error {
	if len(msgs) == 0 {
		id, ok := s.scope(r)
		if !ok {
			return nil
		}
		if err := s.backend.Delete(r.Context(), keyPrefix+id); err != nil {
			return errors.Join(ErrPersistenceUnavailable, err)
		}
		return nil
	}

	data, err := Encode(msgs)
	if err != nil {
		return err
	}

	id, err := s.ensureScope(w, r)
	if err != nil {
		return err
	}

	if err := s.backend.Save(r.Context(), keyPrefix+id, []byte(data), s.ttl); err != nil {
		return errors.Join(ErrPersistenceUnavailable, err)
	}
	return nil
}

// Take implements Store.
func (s *ServerStore) Take(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	id, ok := s.scope(r)
	if !ok {
		return nil, nil
	}

	data, err := s.backend.Pop(r.Context(), keyPrefix+id)
	if err != nil {
		return nil, errors.Join(ErrPersistenceUnavailable, err)
	}

	return Decode(string(data))
}

func (s *ServerStore) scope(r *http.Request) (string, bool) {
	id, err := s.cookies.GetSigned(r, s.scopeCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (s *ServerStore) ensureScope(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, ok := s.scope(r); ok {
		return id, nil
	}

	id := uuid.NewString()
	if err := s.cookies.SetSigned(w, s.scopeCookie, id); err != nil {
		return "", errors.Join(ErrPersistenceUnavailable, err)
	}
	return id, nil
}
