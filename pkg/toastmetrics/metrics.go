// Package toastmetrics exports toast delivery events as Prometheus counters.
package toastmetrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Observer implements toast.Observer.
type Observer struct {
	events   *prometheus.CounterVec
	messages *prometheus.CounterVec
}

var _ toast.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &Observer{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "toast",
			Name:      "events_total",
			Help:      "Toast delivery events by type.",
		}, []string{"event"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "toast",
			Name:      "messages_total",
			Help:      "Toast messages affected by delivery events, by event type.",
		}, []string{"event"}),
	}

	var err error
	if o.events, err = register(reg, o.events); err != nil {
		return nil, err
	}
	if o.messages, err = register(reg, o.messages); err != nil {
		return nil, err
	}

	// Pre-create every series at zero.
	for _, t := range []toast.EventType{toast.EventHeader, toast.EventRestored, toast.EventPersisted, toast.EventDiscarded, toast.EventFailed} {
		o.events.WithLabelValues(string(t))
		o.messages.WithLabelValues(string(t))
	}

	return o, nil
}

// register adds c to reg, reusing an identical collector registered before.
func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing, nil
		}
	}
	return nil, err
}

// Observe records ev.
func (o *Observer) Observe(_ context.Context, ev toast.Event) {
	o.events.WithLabelValues(string(ev.Type)).Inc()
	if ev.Count > 0 {
		o.messages.WithLabelValues(string(ev.Type)).Add(float64(ev.Count))
	}
}

// Handler serves the metrics gathered by g. A nil g uses the default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
