package toast

import (
	"log/slog"
	"net/http"
)

// Option configures the Manager.
type Option func(*Manager)

// WithResponseHeader sets the header carrying messages on background responses.
func WithResponseHeader(name string) Option {
	if name == "" {
		panic("toast: response header name cannot be empty")
	}
	return func(m *Manager) { m.responseHeader = name }
}

// WithMarkers replaces the async request markers.
func WithMarkers(markers ...Marker) Option {
	return func(m *Manager) {
		m.markers = m.markers[:0]
		for _, mk := range markers {
			if mk != nil {
				m.markers = append(m.markers, mk)
			}
		}
	}
}

// WithRedirectDetector replaces IsRedirect.
func WithRedirectDetector(fn func(status int, h http.Header) bool) Option {
	return func(m *Manager) {
		if fn != nil {
			m.isRedirect = fn
		}
	}
}

// WithLogger sets the logger used for swallowed delivery errors.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver registers an observer for delivery events.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}
