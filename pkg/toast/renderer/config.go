package renderer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Config selects and tunes the rendering library at startup.
type Config struct {
	Library     string `env:"TOAST_LIBRARY" envDefault:"toastr"`
	OptionsFile string `env:"TOAST_LIBRARY_OPTIONS_FILE"`
	AssetsPath  string `env:"TOAST_ASSETS_PATH" envDefault:"/toast/"`
	// KindTitles is a BCP 47 tag; when set, untitled toasts get their kind as title.
	KindTitles string `env:"TOAST_KIND_TITLES"`
}

// DefaultConfig returns default renderer configuration.
func DefaultConfig() Config {
	return Config{
		Library:    "toastr",
		AssetsPath: DefaultAssetsPath,
	}
}

// NewFromConfig resolves the library from reg and builds a Renderer.
// Options passed explicitly take precedence.
func NewFromConfig(cfg Config, reg *Registry, toastCfg toast.Config, opts ...Option) (*Renderer, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	lib, err := reg.Lookup(cfg.Library)
	if err != nil {
		return nil, err
	}

	configOpts := []Option{WithToastConfig(toastCfg)}

	if cfg.OptionsFile != "" {
		fileOpts, err := LoadOptions(cfg.OptionsFile)
		if err != nil {
			return nil, err
		}
		configOpts = append(configOpts, WithOptions(fileOpts))
	}
	if cfg.AssetsPath != "" {
		configOpts = append(configOpts, WithScriptPath(strings.TrimSuffix(cfg.AssetsPath, "/")+"/"+scriptName))
	}
	if cfg.KindTitles != "" {
		tag, err := language.Parse(cfg.KindTitles)
		if err != nil {
			return nil, errors.Join(ErrInvalidOptions, err)
		}
		configOpts = append(configOpts, WithKindTitles(tag))
	}

	configOpts = append(configOpts, opts...)

	return New(lib, configOpts...), nil
}

// LoadOptions reads library options from a YAML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidOptions, err)
	}
	return ParseOptions(data)
}

// ParseOptions decodes library options from YAML. The document must be a mapping.
func ParseOptions(data []byte) (Options, error) {
	var opts map[string]any
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, errors.Join(ErrInvalidOptions, err)
	}
	if opts == nil {
		return nil, fmt.Errorf("%w: empty options document", ErrInvalidOptions)
	}
	return Options(opts), nil
}
