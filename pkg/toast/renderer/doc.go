// Package renderer renders toast messages into page markup for a client-side
// notification library.
//
// A Library variant knows the assets of one browser library and encodes the
// messages into a JSON data block. The bundled client script (served by
// AssetHandler) picks the blocks up, including blocks appended later by a
// DataStar patch, and shows them. The same script marks background requests
// and reads the message response header set by the toast middleware.
//
// Toastr and Noty ship in DefaultRegistry. The variant is picked once at
// startup by name:
//
//	r, err := renderer.NewFromConfig(cfg, renderer.DefaultRegistry(), toastCfg)
//
//	// in a templ layout
//	@r.Head()
//	...
//	@r.Toasts()
//
// Library options come from the variant defaults, optionally overridden by a
// YAML file (LoadOptions). Per-message options override both in the browser.
package renderer
