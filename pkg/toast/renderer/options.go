package renderer

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Option configures the Renderer.
type Option func(*Renderer)

// WithOptions merges opts over the library defaults.
func WithOptions(opts Options) Option {
	return func(r *Renderer) {
		r.options = r.options.Merge(opts)
	}
}

// WithScriptPath sets the URL the client script is loaded from.
func WithScriptPath(path string) Option {
	return func(r *Renderer) {
		if path != "" {
			r.scriptPath = path
		}
	}
}

// WithToastConfig passes the header names the client script must use.
func WithToastConfig(cfg toast.Config) Option {
	return func(r *Renderer) { r.toastCfg = cfg }
}

// WithKindTitles titles untitled messages with their kind, cased for lang.
func WithKindTitles(lang language.Tag) Option {
	return func(r *Renderer) { r.titles = &lang }
}

// WithLogger sets the logger for render failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}
