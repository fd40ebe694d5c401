// Package chart turns a working table and a metric choice into a
// renderer-neutral Figure, one handler per chart kind.
package chart

import (
	"fmt"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/scope"
)

// Map defaults.
const (
	DefaultZoom     = 4
	DefaultMapStyle = "open-street-map"
)

// MissingCoordinates is shown in place of a map when the working table has
// no coordinate columns.
const MissingCoordinates = "Latitude and Longitude columns are missing from the dataset."

// Request is what the dispatcher needs from a selection.
type Request struct {
	Kind      Kind
	Primary   census.Column
	Secondary census.Column
	Plot      bool
}

// Result is the output of one dispatch. Figure is nil when nothing is
// drawn; Warning replaces the figure when it cannot be built.
type Result struct {
	Figure   *Figure  `json:"figure,omitempty" yaml:"figure,omitempty"`
	Captions []string `json:"captions,omitempty" yaml:"captions,omitempty"`
	Warning  string   `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Handler builds the result for one chart kind.
type Handler interface {
	Render(w scope.Working, primary, secondary census.Column) Result
}

// Dispatcher selects the handler for a request.
type Dispatcher struct {
	Zoom     int
	MapStyle string
}

// NewDispatcher returns a dispatcher with the default map settings.
func NewDispatcher() Dispatcher {
	return Dispatcher{Zoom: DefaultZoom, MapStyle: DefaultMapStyle}
}

// Dispatch is NewDispatcher().Dispatch.
func Dispatch(w scope.Working, req Request) Result {
	return NewDispatcher().Dispatch(w, req)
}

// Dispatch returns an empty result unless req.Plot is set. Otherwise the
// two parameter captions come first, followed by whatever the kind's
// handler adds.
func (d Dispatcher) Dispatch(w scope.Working, req Request) Result {
	if !req.Plot {
		return Result{}
	}
	res := d.Handler(req.Kind).Render(w, req.Primary, req.Secondary)
	res.Captions = append(ParameterCaptions(req.Primary, req.Secondary), res.Captions...)
	return res
}

// Handler returns the handler for k.
func (d Dispatcher) Handler(k Kind) Handler {
	switch k {
	case Bar:
		return barHandler{}
	case Line:
		return lineHandler{}
	case Pie:
		return pieHandler{}
	case Histogram:
		return histogramHandler{}
	case Mapbox:
		return mapboxHandler{zoom: d.Zoom, style: d.MapStyle}
	case None:
		return noneHandler{}
	default:
		return noneHandler{}
	}
}

// ParameterCaptions describes the roles of the two chosen metrics.
func ParameterCaptions(primary, secondary census.Column) []string {
	return []string{
		fmt.Sprintf("**Primary Parameter:** %s represents the selected primary metric for the visualization.", primary),
		fmt.Sprintf("**Secondary Parameter:** %s represents the selected secondary metric for comparison.", secondary),
	}
}
