package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

// replay copies every cookie set on rec into a fresh request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{name: "no secrets", secrets: nil, wantErr: cookie.ErrNoSecret},
		{name: "empty secrets", secrets: []string{"", ""}, wantErr: cookie.ErrNoSecret},
		{name: "secret too short", secrets: []string{"short"}, wantErr: cookie.ErrSecretTooShort},
		{name: "valid secret", secrets: []string{secret}},
		{name: "rotation", secrets: []string{secret, oldSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "plain", "hello=world&foo=bar"))

	got, err := m.Get(replay(rec), "plain")
	require.NoError(t, err)
	assert.Equal(t, "hello=world&foo=bar", got)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "scope", "3f8a"))

		got, err := m.GetSigned(replay(rec), "scope")
		require.NoError(t, err)
		assert.Equal(t, "3f8a", got)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "scope", "3f8a"))

		c := rec.Result().Cookies()[0]
		value, sig, _ := strings.Cut(c.Value, ".")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "scope", Value: value + "AA." + sig})

		_, err := m.GetSigned(r, "scope")
		assert.Error(t, err)
	})

	t.Run("bound to cookie name", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "scope", "3f8a"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "other", Value: rec.Result().Cookies()[0].Value})

		_, err := m.GetSigned(r, "other")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("missing separator", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "scope", Value: "no-signature"})

		_, err := m.GetSigned(r, "scope")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_Encrypted(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "flash", `[{"kind":"success","text":"Saved"}]`))

	raw := rec.Result().Cookies()[0].Value
	assert.NotContains(t, raw, "Saved", "payload must not be readable")

	got, err := m.GetEncrypted(replay(rec), "flash")
	require.NoError(t, err)
	assert.Equal(t, `[{"kind":"success","text":"Saved"}]`, got)

	other, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	_, err = other.GetEncrypted(replay(rec), "flash")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)

	moved := httptest.NewRequest(http.MethodGet, "/", nil)
	moved.AddCookie(&http.Cookie{Name: "session", Value: raw})
	_, err = m.GetEncrypted(moved, "session")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secret, oldSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, old.SetEncrypted(rec, "flash", "payload"))
	require.NoError(t, old.SetSigned(rec, "scope", "id"))

	r := replay(rec)

	got, err := rotated.GetEncrypted(r, "flash")
	require.NoError(t, err)
	assert.Equal(t, "payload", got)

	id, err := rotated.GetSigned(r, "scope")
	require.NoError(t, err)
	assert.Equal(t, "id", id)
}

func TestManager_PopEncrypted(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret}, cookie.WithPath("/app"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "flash", "once"))

	w := httptest.NewRecorder()
	got, err := m.PopEncrypted(w, replay(rec), "flash")
	require.NoError(t, err)
	assert.Equal(t, "once", got)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "flash", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Equal(t, "/app", cookies[0].Path)

	t.Run("garbage is expired too", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "flash", Value: "not-base64!"})
		w := httptest.NewRecorder()

		_, err := m.PopEncrypted(w, r, "flash")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
		require.Len(t, w.Result().Cookies(), 1)
		assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
	})
}

func TestManager_ValueTooLarge(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = m.SetEncrypted(rec, "flash", strings.Repeat("x", 4000))
	assert.ErrorIs(t, err, cookie.ErrValueTooLarge)
	assert.Empty(t, rec.Result().Cookies())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.DefaultConfig()
	cfg.Secrets = []string{" " + secret + " ", oldSecret}
	cfg.Secure = true

	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "a", "b"))
	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	_, err = cookie.NewFromConfig(cookie.DefaultConfig())
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
