package selection

import (
	"github.com/sells-group/census-dash/internal/chart"
	"github.com/sells-group/census-dash/internal/scope"
)

// Phase is where a render pass sits in the dashboard flow.
type Phase int

const (
	// Welcome shows the greeting; nothing has been chosen yet.
	Welcome Phase = iota
	// Configuring means controls changed but no plot was requested.
	Configuring
	// Rendered means the chart for the current selection is on screen.
	Rendered
)

func (p Phase) String() string {
	switch p {
	case Welcome:
		return "welcome"
	case Configuring:
		return "configuring"
	case Rendered:
		return "rendered"
	}
	return "unknown"
}

// MarshalText encodes the phase name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Phase derives the flow phase from the selection alone. The welcome state
// wins over a plot request: with the whole country selected and no chart
// type chosen there is nothing to draw.
func (s Selection) Phase() Phase {
	if s.Scope == scope.Overall && s.Chart == chart.None {
		return Welcome
	}
	if s.Plot {
		return Rendered
	}
	return Configuring
}
