package cookie

import (
	"net/http"
	"strings"
)

// Config is the environment shape of the cookie manager settings.
// COOKIE_SECRETS is comma separated, newest secret first.
type Config struct {
	Secrets  []string      `env:"COOKIE_SECRETS" envSeparator:","`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	Secure   bool          `env:"COOKIE_SECURE"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // http.SameSiteLaxMode
}

// DefaultConfig mirrors the env defaults, without secrets.
func DefaultConfig() Config {
	return Config{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
}

// NewFromConfig creates a Manager from cfg; opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		secrets = append(secrets, strings.TrimSpace(s))
	}

	base := []Option{WithHTTPOnly(cfg.HttpOnly), WithSecure(cfg.Secure)}
	if cfg.Path != "" {
		base = append(base, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}
	if cfg.SameSite != 0 {
		base = append(base, WithSameSite(cfg.SameSite))
	}

	return New(secrets, append(base, opts...)...)
}
