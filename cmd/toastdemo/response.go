package main

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// response renders itself once the handler has decided the outcome.
type response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

func (a *app) handle(h func(r *http.Request) response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(r).Render(w, r); err != nil {
			a.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}

type pageResponse struct {
	status    int
	component templ.Component
}

func (p pageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(p.status)
	return p.component.Render(r.Context(), w)
}

// redirectResponse answers htmx requests with HX-Redirect and everything
// else with 303 See Other.
type redirectResponse struct {
	url string
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", rr.url)
		w.WriteHeader(http.StatusOK)
		return nil
	}
	http.Redirect(w, r, rr.url, http.StatusSeeOther)
	return nil
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}
