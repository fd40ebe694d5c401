package chart

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/scope"
)

type noneHandler struct{}

func (noneHandler) Render(scope.Working, census.Column, census.Column) Result { return Result{} }

type barHandler struct{}

func (barHandler) Render(w scope.Working, primary, secondary census.Column) Result {
	return Result{Figure: &Figure{
		Kind:       Bar,
		Title:      fmt.Sprintf("Comparison of %s and %s in %s", primary, secondary, w.Scope),
		XLabel:     w.AxisLabel(),
		Categories: w.Categories(),
		Series:     pairSeries(w, primary, secondary),
	}}
}

type lineHandler struct{}

func (lineHandler) Render(w scope.Working, primary, secondary census.Column) Result {
	return Result{Figure: &Figure{
		Kind:       Line,
		Title:      fmt.Sprintf("Trend of %s and %s in %s", primary, secondary, w.Scope),
		XLabel:     w.AxisLabel(),
		Categories: w.Categories(),
		Series:     pairSeries(w, primary, secondary),
	}}
}

func pairSeries(w scope.Working, primary, secondary census.Column) []Series {
	return []Series{
		{Name: string(primary), Values: numbers(w.Frame.FloatOrNaN(primary))},
		{Name: string(secondary), Values: numbers(w.Frame.FloatOrNaN(secondary))},
	}
}

type pieHandler struct{}

// Render drops rows whose value is not finite; a wedge cannot have an
// undefined angle.
func (pieHandler) Render(w scope.Working, primary, _ census.Column) Result {
	labels := w.Categories()
	vals := w.Frame.FloatOrNaN(primary)

	slices := make([]Slice, 0, len(vals))
	for i, v := range vals {
		if !census.Finite(v) {
			continue
		}
		slices = append(slices, Slice{Label: labels[i], Value: Number(v)})
	}
	return Result{Figure: &Figure{
		Kind:   Pie,
		Title:  fmt.Sprintf("%s Distribution in %s", primary, w.Scope),
		XLabel: w.AxisLabel(),
		Slices: slices,
	}}
}

type histogramHandler struct{}

func (histogramHandler) Render(w scope.Working, primary, _ census.Column) Result {
	return Result{Figure: &Figure{
		Kind:   Histogram,
		Title:  fmt.Sprintf("Histogram of %s in %s", primary, w.Scope),
		XLabel: string(primary),
		Values: numbers(w.Frame.FloatOrNaN(primary)),
	}}
}

type mapboxHandler struct {
	zoom  int
	style string
}

func (h mapboxHandler) Render(w scope.Working, primary, secondary census.Column) Result {
	res := Result{Captions: []string{
		fmt.Sprintf("Map visualization where **size** represents `%s` and **color** represents `%s`.", primary, secondary),
	}}
	if !w.Frame.Has(census.Latitude) || !w.Frame.Has(census.Longitude) {
		res.Warning = MissingCoordinates
		return res
	}

	labels := w.Categories()
	names := w.Frame.Text(census.State)
	lat := w.Frame.Float(census.Latitude)
	lon := w.Frame.Float(census.Longitude)
	size := w.Frame.FloatOrNaN(primary)
	color := w.Frame.FloatOrNaN(secondary)

	var points []Point
	var flat []float64
	for i := range w.Frame.Len() {
		if !census.Finite(lat[i]) || !census.Finite(lon[i]) {
			continue
		}
		p := Point{
			Label: labels[i],
			Lat:   Number(lat[i]),
			Lon:   Number(lon[i]),
			Size:  Number(size[i]),
			Color: Number(color[i]),
		}
		if names != nil {
			p.Name = names[i]
		}
		points = append(points, p)
		flat = append(flat, lon[i], lat[i])
	}

	fig := &Figure{
		Kind:       Mapbox,
		Title:      fmt.Sprintf("Mapbox Visualization of %s and %s in %s", primary, secondary, w.Scope),
		Points:     points,
		SizeLabel:  string(primary),
		ColorLabel: string(secondary),
		Zoom:       h.zoom,
		MapStyle:   h.style,
	}
	if len(flat) > 0 {
		c, err := xy.Centroid(geom.NewMultiPointFlat(geom.XY, flat))
		if err != nil {
			zap.L().Warn("chart: map centroid", zap.Error(err))
		} else {
			fig.Center = &LatLon{Lat: Number(c.Y()), Lon: Number(c.X())}
		}
	}
	res.Figure = fig
	return res
}
