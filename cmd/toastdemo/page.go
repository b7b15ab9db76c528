package main

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/toastkit/pkg/toast/renderer"
)

const (
	htmxScript     = "https://cdn.jsdelivr.net/npm/htmx.org@2.0.6/dist/htmx.min.js"
	datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.4/bundles/datastar.js"
)

// page renders the demo document. The renderer's head assets come first and
// the request toasts are emitted at the end of the body.
func page(rend *renderer.Renderer, title string) templ.Component {
	head := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<script src="`+htmxScript+`" defer></script>`+
			`<script type="module" src="`+datastarScript+`"></script>`)
		return err
	})

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `</head><body>`+
			`<h1>`+templ.EscapeString(title)+`</h1>`+
			`<form method="post" action="/save">`+
			`<input name="name" placeholder="Name"> <button type="submit">Save and redirect</button>`+
			`</form>`+
			`<p><button hx-post="/api/check" hx-swap="none">Background check</button> `+
			`<button data-on-click="@get('/events')">Stream a toast</button> `+
			`<a href="/?welcome">Reload with a welcome toast</a></p>`)
		return err
	})

	end := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})

	return templ.Join(head, rend.Head(), body, rend.Toasts(), end)
}
