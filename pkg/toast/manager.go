package toast

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Manager owns the delivery configuration and provides the middleware.
type Manager struct {
	store          Store
	responseHeader string
	markers        []Marker
	isRedirect     func(status int, h http.Header) bool
	logger         *slog.Logger
	observer       Observer
}

// New creates a Manager. store may be nil, in which case messages raised for
// a redirect are always discarded.
func New(store Store, opts ...Option) *Manager {
	def := DefaultConfig()
	m := &Manager{
		store:          store,
		responseHeader: def.ResponseHeader,
		markers:        def.Markers(),
		isRedirect:     IsRedirect,
		logger:         discardLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ResponseHeader returns the header name used for background delivery.
func (m *Manager) ResponseHeader() string {
	return m.responseHeader
}

// IsAsync reports whether r carries any of the configured async markers.
func (m *Manager) IsAsync(r *http.Request) bool {
	for _, mk := range m.markers {
		if mk(r) {
			return true
		}
	}
	return false
}

// Middleware attaches a fresh container to every request and delivers its
// messages once the handler starts responding.
//
// Page requests keep their body untouched; the view layer renders the
// container. Background requests get the encoded messages in the response
// header, which is omitted when there is nothing to deliver.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		async := m.IsAsync(r)
		c := newContainer(w, r, NewAccessor(), m.store, m.logger, m.observe)

		rw := &responseWriter{ResponseWriter: w}
		rw.onCommit = func(status int, sniff []byte) {
			m.deliver(r.Context(), w, c, async, status, sniff)
		}

		next.ServeHTTP(rw, r.WithContext(WithContainer(r.Context(), c)))

		// Nothing written: headers are still open.
		rw.commit(http.StatusOK, nil)
	})
}

// Middleware is shorthand for New(store, opts...).Middleware.
func Middleware(store Store, opts ...Option) func(http.Handler) http.Handler {
	return New(store, opts...).Middleware
}

func (m *Manager) deliver(ctx context.Context, w http.ResponseWriter, c *Container, async bool, status int, sniff []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("toast delivery panic: %v", rec)
			m.logger.ErrorContext(ctx, "toast delivery failed",
				logger.Component("toast"),
				logger.Error(err),
			)
			m.observe(ctx, Event{Type: EventFailed, Err: err})
		}
	}()

	redirect := m.isRedirect(status, w.Header())
	page := !async && !redirect && rendersPage(status, w.Header(), sniff)

	c.settle(redirect, async || page)

	if !async || redirect {
		return
	}

	msgs := c.Messages()
	if len(msgs) == 0 {
		return
	}

	value, err := Encode(msgs)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to encode toasts for response header",
			logger.Component("toast"),
			logger.Count(len(msgs)),
			logger.Error(err),
		)
		m.observe(ctx, Event{Type: EventFailed, Err: err})
		return
	}

	w.Header().Set(m.responseHeader, value)
	m.observe(ctx, Event{Type: EventHeader, Count: len(msgs)})
}

func (m *Manager) observe(ctx context.Context, ev Event) {
	if m.observer != nil {
		m.observer.Observe(ctx, ev)
	}
}

// rendersPage reports whether the response is an HTML document the view
// layer may embed toasts into. The content type is sniffed from the first
// body chunk when the handler did not set one.
func rendersPage(status int, h http.Header, sniff []byte) bool {
	if status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}

	ct := h.Get("Content-Type")
	if ct == "" && len(sniff) > 0 {
		ct = http.DetectContentType(sniff)
	}
	if ct == "" {
		return false
	}

	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
