package renderer

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

// DefaultAssetsPath is where AssetHandler is usually mounted.
const DefaultAssetsPath = "/toast/"

const scriptName = "toast.js"

//go:embed assets
var assets embed.FS

// AssetFS returns the bundled client assets.
func AssetFS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// AssetHandler serves the bundled client assets under prefix.
func AssetHandler(prefix string) http.Handler {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return http.StripPrefix(prefix, http.FileServerFS(AssetFS()))
}
