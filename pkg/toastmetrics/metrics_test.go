package toastmetrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toastmetrics"
)

func TestObserver(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	obs, err := toastmetrics.New(reg, "app")
	require.NoError(t, err)

	ctx := context.Background()
	obs.Observe(ctx, toast.Event{Type: toast.EventHeader, Count: 2})
	obs.Observe(ctx, toast.Event{Type: toast.EventHeader, Count: 1})
	obs.Observe(ctx, toast.Event{Type: toast.EventFailed, Err: assert.AnError})

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 2)

	var series int
	for _, mf := range mfs {
		series += len(mf.GetMetric())
	}
	assert.Equal(t, 10, series)

	h := toastmetrics.Handler(reg)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `app_toast_events_total{event="header"} 2`)
	assert.Contains(t, body, `app_toast_messages_total{event="header"} 3`)
	assert.Contains(t, body, `app_toast_events_total{event="failed"} 1`)
	assert.Contains(t, body, `app_toast_messages_total{event="failed"} 0`)
}

func TestNew_RegistersTwice(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := toastmetrics.New(reg, "app")
	require.NoError(t, err)

	second, err := toastmetrics.New(reg, "app")
	require.NoError(t, err)
	second.Observe(context.Background(), toast.Event{Type: toast.EventPersisted, Count: 4})

	rec := httptest.NewRecorder()
	toastmetrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `app_toast_messages_total{event="persisted"} 4`)
}

func TestObserver_WithMiddleware(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	obs, err := toastmetrics.New(reg, "")
	require.NoError(t, err)

	h := toast.New(nil, toast.WithObserver(obs)).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = toast.Info(r.Context(), "hello")
		_ = toast.Info(r.Context(), "lost", toast.AfterRedirect())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Toast-Request-Type", "XMLHttpRequest")
	h.ServeHTTP(httptest.NewRecorder(), r)

	rec := httptest.NewRecorder()
	toastmetrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `toast_messages_total{event="header"} 1`)
	assert.Contains(t, rec.Body.String(), `toast_messages_total{event="discarded"} 1`)
}
