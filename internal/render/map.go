package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/census-dash/internal/chart"
)

//go:embed templates/map.html
var templateFS embed.FS

var mapTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html"))

type tileSource struct {
	URL         string
	Attribution string
}

const osmAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

var tileSources = map[string]tileSource{
	"open-street-map": {
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: osmAttribution,
	},
	"carto-positron": {
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png",
		Attribution: osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`,
	},
	"carto-darkmatter": {
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}.png",
		Attribution: osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`,
	},
}

// sourceFor falls back to OpenStreetMap for unknown styles.
func sourceFor(style string) tileSource {
	if ts, ok := tileSources[style]; ok {
		return ts
	}
	return tileSources[chart.DefaultMapStyle]
}

type mapView struct {
	ID          string
	Title       string
	Height      int
	Data        template.JS
	Lat, Lon    float64
	Zoom        int
	TileURL     string
	Attribution string
	SizeLabel   string
	ColorLabel  string
}

// MapHTML renders fig as a self-contained Leaflet map fragment.
func MapHTML(fig *chart.Figure, opts Options) (template.HTML, error) {
	if fig == nil || fig.Kind != chart.Mapbox {
		return "", eris.New("render: map needs a Mapbox figure")
	}
	opts = opts.normalized()

	data, err := GeoJSON(fig)
	if err != nil {
		return "", err
	}

	ts := sourceFor(fig.MapStyle)
	view := mapView{
		ID:          "map-" + uuid.NewString(),
		Title:       fig.Title,
		Height:      opts.Height,
		Data:        template.JS(data),
		Zoom:        fig.Zoom,
		TileURL:     ts.URL,
		Attribution: ts.Attribution,
		SizeLabel:   fig.SizeLabel,
		ColorLabel:  fig.ColorLabel,
	}
	if fig.Center != nil {
		view.Lat, view.Lon = float64(fig.Center.Lat), float64(fig.Center.Lon)
	}
	if view.Zoom <= 0 {
		view.Zoom = chart.DefaultZoom
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, view); err != nil {
		return "", eris.Wrap(err, "render: map template")
	}
	return template.HTML(buf.String()), nil
}

// MapPage wraps MapHTML in a standalone HTML document.
func MapPage(fig *chart.Figure, opts Options) ([]byte, error) {
	frag, err := MapHTML(fig, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{fig.Title, frag})
	if err != nil {
		return nil, eris.Wrap(err, "render: map page")
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>{{.Body}}</body>
</html>
`))
