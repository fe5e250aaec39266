package mapset

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/map.html.tmpl
var templateFS embed.FS

// RenderOptions controls how map documents look
type RenderOptions struct {
	Zoom         int
	MarkerRadius float64
	MarkerColor  string
	TileURL      string
	Attribution  string
}

// DefaultRenderOptions returns circle markers of radius 3 in blue at zoom 12
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Zoom:         12,
		MarkerRadius: 3,
		MarkerColor:  "blue",
		TileURL:      "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution:  "&copy; OpenStreetMap contributors",
	}
}

// Marker is one point of a rendered map
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup string  `json:"popup"`
}

type documentData struct {
	Title       string
	Center      LatLon
	Zoom        int
	TileURL     string
	Attribution string
	Radius      float64
	Color       string
	Markers     []Marker
}

// Renderer produces self-contained Leaflet HTML documents
type Renderer struct {
	options  RenderOptions
	template *template.Template
}

// NewRenderer parses the embedded document template
func NewRenderer(options RenderOptions) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/map.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse map template: %w", err)
	}
	return &Renderer{options: options, template: tmpl}, nil
}

// Render writes one document centered at center with one marker per entry
func (r *Renderer) Render(title string, center LatLon, markers []Marker) (string, error) {
	if markers == nil {
		markers = []Marker{}
	}
	data := documentData{
		Title:       title,
		Center:      center,
		Zoom:        r.options.Zoom,
		TileURL:     r.options.TileURL,
		Attribution: r.options.Attribution,
		Radius:      r.options.MarkerRadius,
		Color:       r.options.MarkerColor,
		Markers:     markers,
	}

	var buf bytes.Buffer
	if err := r.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render map %q: %w", title, err)
	}
	return buf.String(), nil
}
