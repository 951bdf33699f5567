package renderer

import (
	"net/http"

	"github.com/unrolled/render"
)

const svgContentType = "image/svg+xml; charset=utf-8"

// New returns the JSON renderer shared by all handlers. Development output is indented.
func New(isDevelopment bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:   isDevelopment,
		UnEscapeHTML: true,
	})
}

// SVG writes an SVG document. render.Data keeps a Content-Type that is already set.
func SVG(r *render.Render, w http.ResponseWriter, status int, svg []byte) error {
	w.Header().Set("Content-Type", svgContentType)
	return r.Data(w, status, svg)
}
