// Package dashboard serves the interactive census dashboard. Every request
// runs one Cycle: selection in, working table and chart result out.
package dashboard

import (
	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/chart"
	"github.com/sells-group/census-dash/internal/scope"
	"github.com/sells-group/census-dash/internal/selection"
)

// Cycle is the context of one render pass. The frame is shared and never
// modified; everything else belongs to the pass.
type Cycle struct {
	Frame      *census.Frame
	Selection  selection.Selection
	Dispatcher chart.Dispatcher
}

// Pass is what one render pass produced.
type Pass struct {
	Selection selection.Selection `json:"selection" yaml:"selection"`
	Phase     selection.Phase     `json:"phase" yaml:"phase"`
	Working   *scope.Working      `json:"-" yaml:"-"`
	Result    chart.Result        `json:"result" yaml:"result"`
}

// Run computes the pass. The welcome phase computes nothing; otherwise
// the working table is always built and the chart only when a plot was
// requested.
func (c Cycle) Run() Pass {
	p := Pass{Selection: c.Selection, Phase: c.Selection.Phase()}
	if p.Phase == selection.Welcome {
		return p
	}

	w := scope.Compute(c.Frame, c.Selection.Scope)
	p.Working = &w
	p.Result = c.dispatcher().Dispatch(w, c.Selection.Request())
	return p
}

func (c Cycle) dispatcher() chart.Dispatcher {
	if c.Dispatcher.Zoom == 0 && c.Dispatcher.MapStyle == "" {
		return chart.NewDispatcher()
	}
	return c.Dispatcher
}
