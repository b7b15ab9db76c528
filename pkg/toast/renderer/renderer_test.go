package renderer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toast/renderer"
)

var dataBlock = regexp.MustCompile(`(?s)<script type="application/toast\+json"[^>]*>(.*?)</script>`)

type renderedPayload struct {
	Library  string          `json:"library"`
	Options  map[string]any  `json:"options"`
	Messages []toast.Message `json:"messages"`
}

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func decodeBlock(t *testing.T, html string) renderedPayload {
	t.Helper()
	m := dataBlock.FindStringSubmatch(html)
	require.Len(t, m, 2, "data block not found in %q", html)

	var p renderedPayload
	require.NoError(t, json.Unmarshal([]byte(m[1]), &p))
	return p
}

func TestRenderer_Component(t *testing.T) {
	t.Parallel()

	msgs := []toast.Message{
		{Kind: toast.KindSuccess, Text: `Saved <b>"draft"</b>`},
		{Kind: toast.KindError, Text: "Größe", Options: map[string]any{"timeOut": float64(0)}},
	}

	for _, lib := range []renderer.Library{renderer.Toastr(), renderer.Noty()} {
		t.Run(lib.Name(), func(t *testing.T) {
			t.Parallel()
			r := renderer.New(lib)

			html := render(t, context.Background(), r.Component(msgs))
			assert.NotContains(t, html, "<b>", "text must be escaped inside the script block")

			p := decodeBlock(t, html)
			assert.Equal(t, lib.Name(), p.Library)
			assert.Equal(t, msgs, p.Messages)
			assert.NotEmpty(t, p.Options)
		})
	}

	t.Run("empty renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, render(t, context.Background(), renderer.New(renderer.Toastr()).Component(nil)))
	})

	t.Run("unencodable message renders nothing", func(t *testing.T) {
		t.Parallel()
		bad := []toast.Message{{Kind: toast.KindInfo, Text: "x", Options: map[string]any{"c": make(chan int)}}}
		assert.Empty(t, render(t, context.Background(), renderer.New(renderer.Toastr()).Component(bad)))
	})

	t.Run("nonce", func(t *testing.T) {
		t.Parallel()
		ctx := templ.WithNonce(context.Background(), "abc123")
		html := render(t, ctx, renderer.New(renderer.Noty()).Component(msgs))
		assert.Contains(t, html, `nonce="abc123"`)
	})
}

func TestRenderer_Options(t *testing.T) {
	t.Parallel()

	r := renderer.New(renderer.Toastr(), renderer.WithOptions(renderer.Options{
		"positionClass": "toast-bottom-left",
		"rtl":           true,
	}))

	opts := r.Options()
	assert.Equal(t, "toast-bottom-left", opts["positionClass"])
	assert.Equal(t, true, opts["rtl"])
	assert.Equal(t, true, opts["closeButton"])

	// Library defaults are not mutated.
	assert.Equal(t, "toast-top-right", renderer.Toastr().Defaults()["positionClass"])
}

func TestRenderer_KindTitles(t *testing.T) {
	t.Parallel()

	r := renderer.New(renderer.Toastr(), renderer.WithKindTitles(language.English))
	msgs := []toast.Message{
		{Kind: toast.KindWarning, Text: "Disk almost full"},
		{Kind: toast.KindInfo, Text: "Custom", Options: map[string]any{"title": "Heads up"}},
	}

	p := decodeBlock(t, render(t, context.Background(), r.Component(msgs)))
	require.Len(t, p.Messages, 2)
	assert.Equal(t, "Warning", p.Messages[0].Options["title"])
	assert.Equal(t, "Heads up", p.Messages[1].Options["title"])
	assert.Nil(t, msgs[0].Options, "input messages are not modified")
}

func TestRenderer_Head(t *testing.T) {
	t.Parallel()

	cfg := toast.DefaultConfig()
	cfg.ResponseHeader = "X-Notify"
	r := renderer.New(renderer.Toastr(),
		renderer.WithToastConfig(cfg),
		renderer.WithScriptPath("/static/toast.js"),
	)

	html := render(t, context.Background(), r.Head())
	assert.Contains(t, html, `toastr.min.css`)
	assert.Contains(t, html, `jquery.min.js`)
	assert.Contains(t, html, `src="/static/toast.js"`)
	assert.Contains(t, html, `data-request-header="X-Toast-Request-Type"`)
	assert.Contains(t, html, `data-request-value="XMLHttpRequest"`)
	assert.Contains(t, html, `data-response-header="X-Notify"`)
	assert.Less(t, strings.Index(html, "jquery"), strings.Index(html, "toastr.min.js"))
}

func TestRenderer_Toasts(t *testing.T) {
	t.Parallel()

	r := renderer.New(renderer.Noty())
	manager := toast.New(nil)

	h := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = toast.Info(req.Context(), "Welcome back")
		w.Header().Set("Content-Type", "text/html")
		_ = r.Toasts().Render(req.Context(), w)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	p := decodeBlock(t, rec.Body.String())
	assert.Equal(t, []toast.Message{{Kind: toast.KindInfo, Text: "Welcome back"}}, p.Messages)

	t.Run("outside middleware", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, render(t, context.Background(), r.Toasts()))
	})
}

func TestRenderer_PatchToasts(t *testing.T) {
	t.Parallel()

	r := renderer.New(renderer.Toastr())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Accept", "text/event-stream")
	sse := datastar.NewSSE(rec, req)

	require.NoError(t, r.PatchToasts(sse, []toast.Message{{Kind: toast.KindSuccess, Text: "Done"}}))
	require.NoError(t, r.PatchToasts(sse, nil))

	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "selector body")
	assert.Contains(t, body, "mode append")
	assert.Contains(t, body, "application/toast+json")
	assert.Equal(t, 1, strings.Count(body, "datastar-patch-elements"))
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := renderer.DefaultRegistry()
	assert.Equal(t, []string{"noty", "toastr"}, reg.Names())

	lib, err := reg.Lookup("Toastr")
	require.NoError(t, err)
	assert.Equal(t, "toastr", lib.Name())

	_, err = reg.Lookup("sweetalert")
	assert.ErrorIs(t, err, renderer.ErrUnknownLibrary)

	assert.ErrorIs(t, reg.Register(renderer.Noty()), renderer.ErrDuplicateLibrary)
	assert.ErrorIs(t, reg.Register(nil), renderer.ErrUnknownLibrary)

	custom := renderer.NewLibrary("custom", renderer.Assets{}, nil)
	require.NoError(t, reg.Register(custom))
	assert.Contains(t, reg.Names(), "custom")

	assert.Panics(t, func() { renderer.NewRegistry(renderer.Noty(), renderer.Noty()) })
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    renderer.Options
		wantErr bool
	}{
		{
			name:  "mapping",
			input: "positionClass: toast-bottom-full-width\ntimeOut: 2500\ncloseButton: false\n",
			want:  renderer.Options{"positionClass": "toast-bottom-full-width", "timeOut": 2500, "closeButton": false},
		},
		{
			name:  "nested",
			input: "animation:\n  open: fadeIn\n  close: fadeOut\n",
			want:  renderer.Options{"animation": map[string]any{"open": "fadeIn", "close": "fadeOut"}},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "sequence", input: "- a\n- b\n", wantErr: true},
		{name: "malformed", input: "a: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := renderer.ParseOptions([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, renderer.ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		r, err := renderer.NewFromConfig(renderer.DefaultConfig(), nil, toast.DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, "toastr", r.Library().Name())
		assert.Contains(t, render(t, context.Background(), r.Head()), `src="/toast/toast.js"`)
	})

	t.Run("options file and titles", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "noty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("layout: bottomLeft\n"), 0o600))

		cfg := renderer.Config{Library: "noty", OptionsFile: path, AssetsPath: "/assets", KindTitles: "en"}
		r, err := renderer.NewFromConfig(cfg, renderer.DefaultRegistry(), toast.DefaultConfig())
		require.NoError(t, err)

		assert.Equal(t, "bottomLeft", r.Options()["layout"])
		assert.Contains(t, render(t, context.Background(), r.Head()), `src="/assets/toast.js"`)

		p := decodeBlock(t, render(t, context.Background(), r.Component([]toast.Message{{Kind: toast.KindError, Text: "x"}})))
		assert.Equal(t, "Error", p.Messages[0].Options["title"])
	})

	t.Run("unknown library", func(t *testing.T) {
		t.Parallel()
		_, err := renderer.NewFromConfig(renderer.Config{Library: "growl"}, nil, toast.DefaultConfig())
		assert.ErrorIs(t, err, renderer.ErrUnknownLibrary)
	})

	t.Run("missing options file", func(t *testing.T) {
		t.Parallel()
		_, err := renderer.NewFromConfig(renderer.Config{Library: "toastr", OptionsFile: "/nonexistent/opts.yaml"}, nil, toast.DefaultConfig())
		assert.ErrorIs(t, err, renderer.ErrInvalidOptions)
	})

	t.Run("bad language tag", func(t *testing.T) {
		t.Parallel()
		_, err := renderer.NewFromConfig(renderer.Config{Library: "toastr", KindTitles: "not a tag!"}, nil, toast.DefaultConfig())
		assert.ErrorIs(t, err, renderer.ErrInvalidOptions)
	})
}

func TestAssetHandler(t *testing.T) {
	t.Parallel()

	h := renderer.AssetHandler("/toast")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/toast/toast.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), "application/toast+json")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/toast/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
