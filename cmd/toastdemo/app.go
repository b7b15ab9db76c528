package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toast/renderer"
	"github.com/dmitrymomot/toastkit/pkg/toastmetrics"
)

type app struct {
	log      *slog.Logger
	toasts   *toast.Manager
	rend     *renderer.Renderer
	assets   string
	cors     cors.Options
	gatherer prometheus.Gatherer
	checks   []httpserver.Check
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.log, a.checks...))
	r.Handle("/metrics", toastmetrics.Handler(a.gatherer))
	r.Handle(a.assets+"*", renderer.AssetHandler(a.assets))

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(a.cors))
		r.Use(a.toasts.Middleware)

		r.Get("/", a.handle(a.home))
		r.Post("/save", a.handle(a.save))
		r.Post("/api/check", a.handle(a.check))
		r.Get("/events", a.events)
	})

	return r
}

func (a *app) home(r *http.Request) response {
	if r.URL.Query().Has("welcome") {
		a.notify(r, toast.Info(r.Context(), "Welcome back", toast.WithTitle("Hello")))
	}
	return pageResponse{status: http.StatusOK, component: page(a.rend, "Toasts")}
}

// save shows the success toast on the page the browser is redirected to.
func (a *app) save(r *http.Request) response {
	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		a.notify(r, toast.Error(r.Context(), "Name is required", toast.WithTitle("Validation")))
		return pageResponse{status: http.StatusUnprocessableEntity, component: page(a.rend, "Toasts")}
	}

	a.notify(r, toast.Success(r.Context(), "Saved "+name, toast.AfterRedirect()))
	return redirectResponse{url: "/"}
}

// check answers background requests; its toasts travel in the response header.
func (a *app) check(r *http.Request) response {
	now := time.Now().UTC()
	a.notify(r, toast.Info(r.Context(), "Checked at "+now.Format(time.Kitchen)))
	if now.Second()%2 == 1 {
		a.notify(r, toast.Warning(r.Context(), "Quota at 80%", toast.WithOption("timeOut", 10000)))
	}
	return jsonResponse{status: http.StatusOK, body: map[string]any{"ok": true, "checked_at": now}}
}

// events streams a toast into the open page over DataStar.
func (a *app) events(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	msg := toast.NewMessage(toast.KindSuccess, "Streamed at "+time.Now().UTC().Format(time.Kitchen), nil)
	if err := a.rend.PatchToasts(sse, []toast.Message{msg}); err != nil {
		a.log.WarnContext(r.Context(), "failed to stream toast", logger.Error(err))
	}
}

func (a *app) notify(r *http.Request, err error) {
	if err != nil {
		a.log.WarnContext(r.Context(), "failed to queue toast", logger.Error(err))
	}
}
