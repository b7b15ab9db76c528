package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Renderer turns the messages of a request into page markup for one library.
type Renderer struct {
	lib        Library
	options    Options
	scriptPath string
	toastCfg   toast.Config
	titles     *language.Tag
	logger     *slog.Logger
}

// New creates a Renderer for lib. The library defaults are used unless
// overridden with WithOptions.
func New(lib Library, opts ...Option) *Renderer {
	if lib == nil {
		panic("renderer: library is required")
	}

	r := &Renderer{
		lib:        lib,
		options:    lib.Defaults(),
		scriptPath: DefaultAssetsPath + scriptName,
		toastCfg:   toast.DefaultConfig(),
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Library returns the configured library.
func (r *Renderer) Library() Library { return r.lib }

// Options returns the effective library options.
func (r *Renderer) Options() Options { return r.options.Merge(nil) }

// Head renders the library assets and the client script. Place it once in
// the page head.
func (r *Renderer) Head() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		nonce := nonceAttr(ctx)
		assets := r.lib.Assets()

		for _, href := range assets.Styles {
			if _, err := fmt.Fprintf(w, `<link rel="stylesheet" href="%s">`, templ.EscapeString(href)); err != nil {
				return err
			}
		}
		for _, src := range assets.Scripts {
			if _, err := fmt.Fprintf(w, `<script src="%s"%s></script>`, templ.EscapeString(src), nonce); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w,
			`<script src="%s" data-request-header="%s" data-request-value="%s" data-response-header="%s"%s defer></script>`,
			templ.EscapeString(r.scriptPath),
			templ.EscapeString(r.toastCfg.RequestHeader),
			templ.EscapeString(r.toastCfg.RequestHeaderValue),
			templ.EscapeString(r.toastCfg.ResponseHeader),
			nonce,
		)
		return err
	})
}

// Toasts renders the messages of the request found in the render context.
// It renders nothing outside the toast middleware.
func (r *Renderer) Toasts() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.Component(toast.Messages(ctx)).Render(ctx, w)
	})
}

// Component renders msgs. An empty list renders nothing. Encoding failures
// are logged and render nothing, so a broken message never breaks the page.
func (r *Renderer) Component(msgs []toast.Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(msgs) == 0 {
			return nil
		}

		var buf bytes.Buffer
		if err := r.lib.Render(r.withTitles(msgs), r.options).Render(ctx, &buf); err != nil {
			r.logger.WarnContext(ctx, "failed to render toasts",
				logger.Component("toast.renderer"),
				logger.Library(r.lib.Name()),
				logger.Count(len(msgs)),
				logger.Error(err),
			)
			return nil
		}

		_, err := buf.WriteTo(w)
		return err
	})
}

// PatchToasts appends msgs to the page body over a DataStar SSE stream.
func (r *Renderer) PatchToasts(sse *datastar.ServerSentEventGenerator, msgs []toast.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return sse.PatchElementTempl(r.Component(msgs),
		datastar.WithSelector("body"),
		datastar.WithMode(datastar.ElementPatchModeAppend),
	)
}

// withTitles fills a kind based title for messages without one.
func (r *Renderer) withTitles(msgs []toast.Message) []toast.Message {
	if r.titles == nil {
		return msgs
	}

	caser := cases.Title(*r.titles)
	out := make([]toast.Message, len(msgs))
	for i, m := range msgs {
		out[i] = m
		if _, ok := m.Option("title"); ok {
			continue
		}
		withTitle := toast.NewMessage(m.Kind, m.Text, m.Options)
		if withTitle.Options == nil {
			withTitle.Options = make(map[string]any, 1)
		}
		withTitle.Options["title"] = caser.String(string(m.Kind))
		out[i] = withTitle
	}
	return out
}

func nonceAttr(ctx context.Context) string {
	nonce := templ.GetNonce(ctx)
	if nonce == "" {
		return ""
	}
	return fmt.Sprintf(` nonce="%s"`, templ.EscapeString(nonce))
}
