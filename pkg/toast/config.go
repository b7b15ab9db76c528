package toast

import "time"

// Config holds the non-rendered toast settings shared by the middleware, the
// stores and the client script.
type Config struct {
	// RequestHeader marks background requests sent by the client script.
	RequestHeader string `env:"TOAST_REQUEST_HEADER" envDefault:"X-Toast-Request-Type"`
	// RequestHeaderValue is the value the client script sends in RequestHeader.
	RequestHeaderValue string `env:"TOAST_REQUEST_HEADER_VALUE" envDefault:"XMLHttpRequest"`
	// ResponseHeader carries the encoded messages on background responses.
	ResponseHeader string `env:"TOAST_RESPONSE_HEADER" envDefault:"X-Toast-Messages"`

	FlashCookie string        `env:"TOAST_FLASH_COOKIE" envDefault:"toast_flash"`
	ScopeCookie string        `env:"TOAST_SCOPE_COOKIE" envDefault:"toast_scope"`
	TTL         time.Duration `env:"TOAST_TTL" envDefault:"5m"`

	DetectHTMX     bool `env:"TOAST_DETECT_HTMX" envDefault:"true"`
	DetectDataStar bool `env:"TOAST_DETECT_DATASTAR" envDefault:"true"`
}

// DefaultConfig returns default toast configuration.
func DefaultConfig() Config {
	return Config{
		RequestHeader:      "X-Toast-Request-Type",
		RequestHeaderValue: "XMLHttpRequest",
		ResponseHeader:     "X-Toast-Messages",
		FlashCookie:        "toast_flash",
		ScopeCookie:        "toast_scope",
		TTL:                5 * time.Minute,
		DetectHTMX:         true,
		DetectDataStar:     true,
	}
}

// Markers returns the async markers enabled by the config.
func (c Config) Markers() []Marker {
	markers := make([]Marker, 0, 3)
	if c.RequestHeader != "" {
		markers = append(markers, HeaderMarker(c.RequestHeader, c.RequestHeaderValue))
	}
	if c.DetectHTMX {
		markers = append(markers, HTMXMarker())
	}
	if c.DetectDataStar {
		markers = append(markers, DataStarMarker())
	}
	return markers
}

// NewFromConfig creates a Manager from the provided Config.
// Options passed explicitly take precedence.
func NewFromConfig(cfg Config, store Store, opts ...Option) *Manager {
	configOpts := make([]Option, 0, 2+len(opts))

	if cfg.ResponseHeader != "" {
		configOpts = append(configOpts, WithResponseHeader(cfg.ResponseHeader))
	}
	configOpts = append(configOpts, WithMarkers(cfg.Markers()...))

	configOpts = append(configOpts, opts...)

	return New(store, configOpts...)
}
