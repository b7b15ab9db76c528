package toast

import (
	"slices"
	"strings"

	"github.com/go-chi/cors"
)

// CORSOptions extends base so cross-origin client script may send the
// request marker and read the message header.
func CORSOptions(base cors.Options, cfg Config) cors.Options {
	if cfg.RequestHeader != "" && !containsFold(base.AllowedHeaders, cfg.RequestHeader) {
		base.AllowedHeaders = append(slices.Clone(base.AllowedHeaders), cfg.RequestHeader)
	}

	exposed := slices.Clone(base.ExposedHeaders)
	for _, h := range []string{cfg.RequestHeader, cfg.ResponseHeader} {
		if h != "" && !containsFold(exposed, h) {
			exposed = append(exposed, h)
		}
	}
	base.ExposedHeaders = exposed

	return base
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}
