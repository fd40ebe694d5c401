package chart

import (
	"math"
	"strconv"

	"github.com/sells-group/census-dash/internal/census"
)

// Number is a float64 that encodes non-finite values as null.
type Number float64

// Finite reports whether n is neither NaN nor infinite.
func (n Number) Finite() bool { return census.Finite(float64(n)) }

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Finite() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'g', -1, 64), nil
}

// MarshalYAML implements yaml.Marshaler.
func (n Number) MarshalYAML() (any, error) {
	if !n.Finite() {
		return nil, nil
	}
	return float64(n), nil
}

func numbers(vals []float64) []Number {
	out := make([]Number, len(vals))
	for i, v := range vals {
		out[i] = Number(v)
	}
	return out
}

// Series is one named line or bar group over Figure.Categories.
type Series struct {
	Name   string   `json:"name" yaml:"name"`
	Values []Number `json:"values" yaml:"values"`
}

// Slice is one pie wedge.
type Slice struct {
	Label string `json:"label" yaml:"label"`
	Value Number `json:"value" yaml:"value"`
}

// Point is one map marker.
type Point struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
	Lat   Number `json:"lat" yaml:"lat"`
	Lon   Number `json:"lon" yaml:"lon"`
	Size  Number `json:"size" yaml:"size"`
	Color Number `json:"color" yaml:"color"`
}

// LatLon is a map position.
type LatLon struct {
	Lat Number `json:"lat" yaml:"lat"`
	Lon Number `json:"lon" yaml:"lon"`
}

// Figure is a renderer-neutral chart description. Which fields are set
// depends on Kind.
type Figure struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Title  string `json:"title" yaml:"title"`
	XLabel string `json:"x_label,omitempty" yaml:"x_label,omitempty"`

	// Bar and Line.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Series     []Series `json:"series,omitempty" yaml:"series,omitempty"`

	// Pie.
	Slices []Slice `json:"slices,omitempty" yaml:"slices,omitempty"`

	// Histogram.
	Values []Number `json:"values,omitempty" yaml:"values,omitempty"`

	// Mapbox.
	Points     []Point `json:"points,omitempty" yaml:"points,omitempty"`
	SizeLabel  string  `json:"size_label,omitempty" yaml:"size_label,omitempty"`
	ColorLabel string  `json:"color_label,omitempty" yaml:"color_label,omitempty"`
	Center     *LatLon `json:"center,omitempty" yaml:"center,omitempty"`
	Zoom       int     `json:"zoom,omitempty" yaml:"zoom,omitempty"`
	MapStyle   string  `json:"map_style,omitempty" yaml:"map_style,omitempty"`
}

// Empty reports whether the figure has nothing to draw.
func (f *Figure) Empty() bool {
	if f == nil {
		return true
	}
	switch f.Kind {
	case Bar, Line:
		return len(f.Categories) == 0 || len(f.Series) == 0
	case Pie:
		return len(f.Slices) == 0
	case Histogram:
		return len(f.Values) == 0
	case Mapbox:
		return len(f.Points) == 0
	}
	return true
}

// Extent returns the finite min and max over vals. ok is false when no
// value is finite.
func Extent(vals []Number) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if !v.Finite() {
			continue
		}
		lo = min(lo, float64(v))
		hi = max(hi, float64(v))
		ok = true
	}
	return lo, hi, ok
}
