package render

import (
	"bytes"

	"github.com/rotisserie/eris"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/sells-group/census-dash/internal/chart"
)

// lineSVG draws each series over the category index. Non-finite values are
// left out so the line skips them.
func lineSVG(fig *chart.Figure, opts Options) ([]byte, error) {
	n := len(fig.Categories)
	ticks := make([]gochart.Tick, 0, n+1)
	for i, c := range fig.Categories {
		ticks = append(ticks, gochart.Tick{Value: float64(i + 1), Label: c})
	}
	if n == 1 {
		// keep the x range non-empty
		ticks = append(ticks, gochart.Tick{Value: 2, Label: ""})
	}

	var (
		series []gochart.Series
		all    []chart.Number
	)
	for _, s := range fig.Series {
		var xs, ys []float64
		for i, v := range s.Values {
			if i < n && v.Finite() {
				xs = append(xs, float64(i+1))
				ys = append(ys, float64(v))
			}
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   gochart.Style{StrokeWidth: 2, DotWidth: 3},
		})
		all = append(all, s.Values...)
	}
	if len(series) == 0 {
		return nil, errNothingToDraw
	}

	lo, hi, _ := chart.Extent(all)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	tickStyle := gochart.Style{}
	if n > 8 {
		tickStyle.TextRotationDegrees = 45
	}
	ch := gochart.Chart{
		Title:      fig.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:      fig.XLabel,
			Ticks:     ticks,
			TickStyle: tickStyle,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(gochart.SVG, &buf); err != nil {
		return nil, eris.Wrap(err, "render: line chart")
	}
	return buf.Bytes(), nil
}

// pieSVG draws one wedge per slice. The chart library drops wedges that are
// not positive; a pie with none left is an error.
func pieSVG(fig *chart.Figure, opts Options) ([]byte, error) {

	vals := make([]gochart.Value, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		if s.Value.Finite() {
			vals = append(vals, gochart.Value{Label: s.Label, Value: float64(s.Value)})
		}
	}
	if len(vals) == 0 {
		return nil, errNothingToDraw
	}

	pie := gochart.PieChart{
		Title:  fig.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Values: vals,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.SVG, &buf); err != nil {
		return nil, eris.Wrap(err, "render: pie chart")
	}
	return buf.Bytes(), nil
}
