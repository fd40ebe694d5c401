package dashboard

import (
	"bytes"
	"html"
	"html/template"
	"math"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/scope"
)

// Missing is shown for non-finite table cells.
const Missing = "—"

var printer = message.NewPrinter(language.English)

// FormatNumber groups thousands; whole numbers drop the fraction.
func FormatNumber(v float64) string {
	switch {
	case !census.Finite(v):
		return Missing
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return printer.Sprintf("%d", int64(v))
	default:
		return printer.Sprintf("%.2f", v)
	}
}

type table struct {
	Header []string
	Rows   [][]string
}

// newTable lays out the axis column followed by every metric present in
// the working frame.
func newTable(w scope.Working) table {
	cols := []census.Column{w.Axis}
	for _, m := range census.Metrics {
		if w.Frame.Has(m) {
			cols = append(cols, m)
		}
	}

	t := table{Header: make([]string, len(cols))}
	for i, c := range cols {
		t.Header[i] = string(c)
	}
	cats := w.Categories()
	for row := range w.Frame.Len() {
		cells := make([]string, len(cols))
		cells[0] = cats[row]
		for i, c := range cols[1:] {
			cells[i+1] = FormatNumber(w.Frame.Float(c)[row])
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Caption renders a markdown chart caption as an HTML paragraph. Raw HTML
// in the source is not passed through.
func Caption(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		zap.L().Warn("dashboard: caption markdown", zap.Error(err))
		return template.HTML("<p>" + html.EscapeString(md) + "</p>")
	}
	return template.HTML(buf.String())
}
