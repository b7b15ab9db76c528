package config_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/cookie"
	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toast/renderer"
)

func TestLoad_ToastDefaults(t *testing.T) {
	var cfg toast.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, toast.DefaultConfig(), cfg)
	assert.Equal(t, "X-Toast-Messages", cfg.ResponseHeader)
	assert.Equal(t, 5*time.Minute, cfg.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOAST_LIBRARY", "noty")
	t.Setenv("TOAST_KIND_TITLES", "en")
	t.Setenv("COOKIE_SECRETS", "a,b")
	t.Setenv("COOKIE_SAME_SITE", "3")

	var rc renderer.Config
	require.NoError(t, config.Load(&rc))
	assert.Equal(t, "noty", rc.Library)
	assert.Equal(t, "en", rc.KindTitles)
	assert.Equal(t, renderer.DefaultAssetsPath, rc.AssetsPath)

	var cc cookie.Config
	require.NoError(t, config.Load(&cc))
	assert.Equal(t, []string{"a", "b"}, cc.Secrets)
	assert.Equal(t, http.SameSiteStrictMode, cc.SameSite)
}

func TestLoad_CachedPerType(t *testing.T) {
	type storeConfig struct {
		Store string `env:"TOASTKIT_TEST_STORE" envDefault:"cookie"`
	}
	type ttlConfig struct {
		TTL time.Duration `env:"TOASTKIT_TEST_TTL" envDefault:"1m"`
	}

	t.Setenv("TOASTKIT_TEST_STORE", "redis")
	var first storeConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TOASTKIT_TEST_STORE", "postgres")
	t.Setenv("TOASTKIT_TEST_TTL", "30s")

	var second storeConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "redis", second.Store)

	var ttl ttlConfig
	require.NoError(t, config.Load(&ttl))
	assert.Equal(t, 30*time.Second, ttl.TTL)
}

func TestLoad_Errors(t *testing.T) {
	type required struct {
		URL string `env:"TOASTKIT_TEST_REDIS_URL,required"`
	}

	var cfg required
	require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	// The failure is cached as well.
	require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	var nilCfg *toast.Config
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilPointer)
}

func TestReset(t *testing.T) {
	type resettable struct {
		Header string `env:"TOASTKIT_TEST_HEADER" envDefault:"X-Toast-Messages"`
	}

	t.Setenv("TOASTKIT_TEST_HEADER", "X-First")
	var cfg resettable
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "X-First", cfg.Header)

	t.Setenv("TOASTKIT_TEST_HEADER", "X-Second")
	config.Reset()
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "X-Second", cfg.Header)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toast.env")
	require.NoError(t, os.WriteFile(path, []byte("TOASTKIT_FROM_FILE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TOASTKIT_FROM_FILE") })

	require.NoError(t, config.LoadEnv(path))
	assert.Equal(t, "from-file", os.Getenv("TOASTKIT_FROM_FILE"))

	missing := filepath.Join(dir, "missing.env")
	assert.ErrorIs(t, config.LoadEnv(missing), config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(missing) })
}
