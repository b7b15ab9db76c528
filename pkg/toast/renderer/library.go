package renderer

import (
	"maps"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// dataType is the script type the client script looks for.
const dataType = "application/toast+json"

// Options are library-wide display options handed to the client library.
// Per-message options override them in the browser.
type Options map[string]any

// Merge returns a copy of o with every key of other applied on top.
func (o Options) Merge(other Options) Options {
	out := maps.Clone(o)
	if out == nil {
		out = make(Options, len(other))
	}
	maps.Copy(out, other)
	return out
}

// Assets lists the stylesheets and scripts a library needs on the page.
type Assets struct {
	Styles  []string
	Scripts []string
}

// Library renders messages for one client-side notification library.
type Library interface {
	Name() string
	Defaults() Options
	Assets() Assets
	Render(msgs []toast.Message, opts Options) templ.Component
}

// payload is the JSON document read by the client script.
type payload struct {
	Library  string          `json:"library"`
	Options  Options         `json:"options,omitempty"`
	Messages []toast.Message `json:"messages"`
}

type scriptLibrary struct {
	name     string
	assets   Assets
	defaults Options
}

// NewLibrary creates a library variant driven by the bundled client script.
// name must match an adapter known to the script.
func NewLibrary(name string, assets Assets, defaults Options) Library {
	return &scriptLibrary{name: name, assets: assets, defaults: maps.Clone(defaults)}
}

func (l *scriptLibrary) Name() string { return l.name }

func (l *scriptLibrary) Defaults() Options { return maps.Clone(l.defaults) }

func (l *scriptLibrary) Assets() Assets { return l.assets }

func (l *scriptLibrary) Render(msgs []toast.Message, opts Options) templ.Component {
	if msgs == nil {
		msgs = []toast.Message{}
	}
	return templ.JSONScript("", payload{
		Library:  l.name,
		Options:  opts,
		Messages: msgs,
	}).WithType(dataType)
}

// Toastr renders through toastr.js. jQuery is loaded with it.
func Toastr() Library {
	return NewLibrary("toastr",
		Assets{
			Styles: []string{"https://cdnjs.cloudflare.com/ajax/libs/toastr.js/2.1.4/toastr.min.css"},
			Scripts: []string{
				"https://cdnjs.cloudflare.com/ajax/libs/jquery/3.7.1/jquery.min.js",
				"https://cdnjs.cloudflare.com/ajax/libs/toastr.js/2.1.4/toastr.min.js",
			},
		},
		Options{
			"positionClass":     "toast-top-right",
			"closeButton":       true,
			"progressBar":       true,
			"newestOnTop":       true,
			"preventDuplicates": false,
			"escapeHtml":        true,
			"timeOut":           5000,
			"extendedTimeOut":   1000,
		},
	)
}

// Noty renders through Noty v3.
func Noty() Library {
	return NewLibrary("noty",
		Assets{
			Styles:  []string{"https://cdnjs.cloudflare.com/ajax/libs/noty/3.1.4/noty.min.css"},
			Scripts: []string{"https://cdnjs.cloudflare.com/ajax/libs/noty/3.1.4/noty.min.js"},
		},
		Options{
			"layout":      "topRight",
			"theme":       "mint",
			"timeout":     5000,
			"progressBar": true,
			"closeWith":   []string{"click"},
		},
	)
}
