package render

import (
	"bytes"
	"image/color"
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/sells-group/census-dash/internal/chart"
)

// barSVG draws the series side by side within each category.
func barSVG(fig *chart.Figure, opts Options) ([]byte, error) {
	n := len(fig.Categories)

	p := newPlot(fig.Title)
	p.X.Label.Text = fig.XLabel
	p.Legend.Top = true
	p.NominalX(fig.Categories...)
	rotateTicks(p, n)

	// Leave a quarter of each category slot empty between groups.
	slot := vg.Points(float64(opts.Width-120) / float64(n))
	width := slot * 3 / 4 / vg.Length(len(fig.Series))
	if width < vg.Points(1) {
		width = vg.Points(1)
	}

	for i, s := range fig.Series {
		bars, err := plotter.NewBarChart(gaps(s.Values, n), width)
		if err != nil {
			return nil, eris.Wrapf(err, "render: bar series %q", s.Name)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = width * (vg.Length(i) - vg.Length(len(fig.Series)-1)/2)
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	return writeSVG(p, opts)
}

// histogramSVG bins the finite values of fig.
func histogramSVG(fig *chart.Figure, opts Options) ([]byte, error) {
	vals := make(plotter.Values, 0, len(fig.Values))
	for _, v := range fig.Values {
		if v.Finite() {
			vals = append(vals, float64(v))
		}
	}
	if len(vals) == 0 {
		return nil, errNothingToDraw
	}

	h, err := plotter.NewHist(vals, opts.Bins)
	if err != nil {
		return nil, eris.Wrap(err, "render: histogram")
	}
	h.FillColor = plotutil.Color(0)

	p := newPlot(fig.Title)
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = "count"
	p.Add(h)
	return writeSVG(p, opts)
}

// scatterMapSVG plots map points on a plain lon/lat plane. Marker radius
// follows the size metric and marker color the color metric.
func scatterMapSVG(fig *chart.Figure, opts Options) ([]byte, error) {

	xys := make(plotter.XYs, len(fig.Points))
	sizes := make([]chart.Number, len(fig.Points))
	colors := make([]chart.Number, len(fig.Points))
	labels := make([]string, len(fig.Points))
	for i, pt := range fig.Points {
		xys[i] = plotter.XY{X: float64(pt.Lon), Y: float64(pt.Lat)}
		sizes[i], colors[i] = pt.Size, pt.Color
		labels[i] = pt.Label
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, eris.Wrap(err, "render: map points")
	}
	radius := scaler(sizes, 3, 14)
	shade := shader(colors)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: shade(i), Radius: vg.Points(radius(i)), Shape: draw.CircleGlyph{}}
	}

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, eris.Wrap(err, "render: map labels")
	}
	names.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(6)}

	p := newPlot(fig.Title)
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid(), sc, names)
	return writeSVG(p, opts)
}

// placeholderSVG draws the title over an empty canvas.
func placeholderSVG(title string, opts Options) ([]byte, error) {
	p := newPlot(title)
	p.HideAxes()

	msg, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 0, Y: 0}},
		Labels: []string{"No data to display"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "render: placeholder")
	}
	msg.TextStyle[0].XAlign = draw.XCenter
	msg.TextStyle[0].YAlign = draw.YCenter
	p.Add(msg)
	return writeSVG(p, opts)
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	return p
}

func rotateTicks(p *plot.Plot, n int) {
	if n <= 8 {
		return
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func writeSVG(p *plot.Plot, opts Options) ([]byte, error) {
	c := vgsvg.New(vg.Points(float64(opts.Width)), vg.Points(float64(opts.Height)))
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, eris.Wrap(err, "render: write svg")
	}
	return buf.Bytes(), nil
}

// gaps pads or trims vals to n and turns non-finite values into zero-height
// bars.
func gaps(vals []chart.Number, n int) plotter.Values {
	out := make(plotter.Values, n)
	for i := range min(n, len(vals)) {
		if vals[i].Finite() {
			out[i] = float64(vals[i])
		}
	}
	return out
}

// scaler maps vals linearly onto [lo, hi]. Non-finite values get lo.
func scaler(vals []chart.Number, lo, hi float64) func(i int) float64 {
	vmin, vmax, ok := chart.Extent(vals)
	return func(i int) float64 {
		v := vals[i]
		if !ok || !v.Finite() {
			return lo
		}
		if vmax == vmin {
			return (lo + hi) / 2
		}
		return lo + (float64(v)-vmin)/(vmax-vmin)*(hi-lo)
	}
}

// shader colors vals on a diverging blue-red scale. Non-finite values are
// grey.
func shader(vals []chart.Number) func(i int) color.Color {
	grey := color.Gray{Y: 160}
	vmin, vmax, ok := chart.Extent(vals)
	if !ok {
		return func(int) color.Color { return grey }
	}
	if vmax == vmin {
		return func(i int) color.Color {
			if !vals[i].Finite() {
				return grey
			}
			return plotutil.Color(0)
		}
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(vmin)
	cm.SetMax(vmax)
	return func(i int) color.Color {
		if !vals[i].Finite() {
			return grey
		}
		c, err := cm.At(float64(vals[i]))
		if err != nil {
			return grey
		}
		return c
	}
}
