// Package render draws chart figures as SVG, GeoJSON and Leaflet map pages.
package render

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/census-dash/internal/chart"
)

// Defaults for Options.
const (
	DefaultWidth  = 960
	DefaultHeight = 540
	DefaultBins   = 16
)

var errNothingToDraw = eris.New("render: nothing to draw")

// Options sizes the output. Width and Height are in points.
type Options struct {
	Width  int
	Height int
	Bins   int // histogram bin count
}

// DefaultOptions returns the stock chart size.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight, Bins: DefaultBins}
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	return o
}

// SVG draws fig. A figure that cannot be drawn, because it is empty or its
// values are degenerate, yields a placeholder carrying only the title, so
// the error is reserved for failures writing the placeholder itself.
func SVG(fig *chart.Figure, opts Options) ([]byte, error) {
	opts = opts.normalized()
	if fig == nil {
		return placeholderSVG("", opts)
	}
	if fig.Empty() {
		return placeholderSVG(fig.Title, opts)
	}

	var (
		out []byte
		err error
	)
	switch fig.Kind {
	case chart.Bar:
		out, err = barSVG(fig, opts)
	case chart.Line:
		out, err = lineSVG(fig, opts)
	case chart.Pie:
		out, err = pieSVG(fig, opts)
	case chart.Histogram:
		out, err = histogramSVG(fig, opts)
	case chart.Mapbox:
		out, err = scatterMapSVG(fig, opts)
	default:
		err = eris.Errorf("render: unsupported chart kind %s", fig.Kind)
	}
	if err != nil {
		if !eris.Is(err, errNothingToDraw) {
			zap.L().Warn("render: falling back to placeholder",
				zap.Stringer("kind", fig.Kind),
				zap.String("title", fig.Title),
				zap.Error(err),
			)
		}
		return placeholderSVG(fig.Title, opts)
	}
	return out, nil
}
