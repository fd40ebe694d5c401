// Package selection holds the sidebar options and the user's current choice.
package selection

import (
	"net/url"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/chart"
	"github.com/sells-group/census-dash/internal/scope"
)

// Form field names shared by the sidebar, the JSON API and the CLI.
const (
	FieldScope     = "scope"
	FieldPrimary   = "primary"
	FieldSecondary = "secondary"
	FieldChart     = "chart"
	FieldPlot      = "plot"
)

// Options are the values each sidebar control offers.
type Options struct {
	States  []string        `json:"states" yaml:"states"`
	Metrics []census.Column `json:"metrics" yaml:"metrics"`
	Charts  []chart.Kind    `json:"charts" yaml:"charts"`
}

// BuildOptions lists the whole-country sentinel followed by the state names
// of f in order of first appearance.
func BuildOptions(f *census.Frame) Options {
	states := []string{scope.Overall}
	seen := map[string]bool{scope.Overall: true}
	for _, s := range f.Text(census.State) {
		if !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	return Options{
		States:  states,
		Metrics: slices.Clone(census.Metrics),
		Charts:  chart.Kinds(),
	}
}

// HasState reports whether name is one of the scope options.
func (o Options) HasState(name string) bool { return slices.Contains(o.States, name) }

// Selection is one render pass worth of user input.
type Selection struct {
	Scope     string        `json:"scope" yaml:"scope"`
	Primary   census.Column `json:"primary" yaml:"primary"`
	Secondary census.Column `json:"secondary" yaml:"secondary"`
	Chart     chart.Kind    `json:"chart" yaml:"chart"`
	Plot      bool          `json:"plot" yaml:"plot"`
}

// Default picks the first entry of every control and leaves Plot unset.
func Default(opts Options) Selection {
	sel := Selection{Scope: scope.Overall, Chart: chart.None}
	if len(opts.States) > 0 {
		sel.Scope = opts.States[0]
	}
	if len(opts.Metrics) > 0 {
		sel.Primary = opts.Metrics[0]
		sel.Secondary = opts.Metrics[0]
	}
	if len(opts.Charts) > 0 {
		sel.Chart = opts.Charts[0]
	}
	return sel
}

// FromValues overlays submitted form values on Default(opts). Missing fields
// keep their default; values no control could have produced are rejected.
func FromValues(v url.Values, opts Options) (Selection, error) {
	sel := Default(opts)

	if s := strings.TrimSpace(v.Get(FieldScope)); s != "" {
		if !opts.HasState(s) {
			return Selection{}, eris.Errorf("selection: unknown scope %q", s)
		}
		sel.Scope = s
	}
	for _, m := range []struct {
		field string
		dst   *census.Column
	}{
		{FieldPrimary, &sel.Primary},
		{FieldSecondary, &sel.Secondary},
	} {
		raw := strings.TrimSpace(v.Get(m.field))
		if raw == "" {
			continue
		}
		c, ok := census.ParseMetric(raw)
		if !ok || !slices.Contains(opts.Metrics, c) {
			return Selection{}, eris.Errorf("selection: unknown %s metric %q", m.field, raw)
		}
		*m.dst = c
	}
	if raw := strings.TrimSpace(v.Get(FieldChart)); raw != "" {
		k, err := chart.ParseKind(raw)
		if err != nil {
			return Selection{}, eris.Wrap(err, "selection: parse chart")
		}
		sel.Chart = k
	}
	sel.Plot = parseFlag(v.Get(FieldPlot))
	return sel, nil
}

// Values encodes the selection as form values accepted by FromValues.
func (s Selection) Values() url.Values {
	v := url.Values{}
	v.Set(FieldScope, s.Scope)
	v.Set(FieldPrimary, string(s.Primary))
	v.Set(FieldSecondary, string(s.Secondary))
	v.Set(FieldChart, s.Chart.Slug())
	if s.Plot {
		v.Set(FieldPlot, "1")
	}
	return v
}

// Request is the part of the selection the chart dispatcher consumes.
func (s Selection) Request() chart.Request {
	return chart.Request{
		Kind:      s.Chart,
		Primary:   s.Primary,
		Secondary: s.Secondary,
		Plot:      s.Plot,
	}
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
