package services

import (
	"bytes"
	"text/template"

	"github.com/printcraft/storefront/app/models"
)

const shirtPath = "M100,0 L160,0 C160,35 175,60 200,60 C225,60 240,35 240,0 L300,0 L400,80 L360,120 L310,90 L310,480 L90,480 L90,90 L40,120 L0,80 Z"

// Values are drawn from the fixed swatch catalog and base64 data URIs, so no escaping is applied.
var previewTemplate = template.Must(template.New("preview").Parse(`<svg viewBox="0 0 400 480" xmlns="http://www.w3.org/2000/svg">
  <path d="{{.Path}}" fill="{{.Color.Value}}"{{if .Color.Light}} stroke="#E5E7EB" stroke-width="1"{{end}}/>
{{- if .DesignURI}}
  <image href="{{.DesignURI}}" x="130" y="120" width="140" height="160" preserveAspectRatio="xMidYMid meet"/>
{{- else}}
  <rect x="135" y="130" width="130" height="140" rx="8" fill="none" stroke="{{if .Color.Light}}#D1D5DB{{else}}rgba(255,255,255,0.15){{end}}" stroke-width="1.5" stroke-dasharray="6 4"/>
{{- end}}
</svg>
`))

type previewData struct {
	Path      string
	Color     models.ShirtColor
	DesignURI string
}

// RenderPreview draws the shirt in the draft's colour with the design, or a guide box when
// there is no design yet.
func RenderPreview(d models.Draft) ([]byte, error) {
	data := previewData{Path: shirtPath, Color: d.Color}
	if d.DesignAsset != nil {
		data.DesignURI = d.DesignAsset.DataURI
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
