package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/chart"
	"github.com/sells-group/census-dash/internal/scope"
	"github.com/sells-group/census-dash/internal/selection"
)

func testFrame() *census.Frame {
	return census.Derive(census.FromRecords([]census.Record{
		{State: "A", District: "A1", Population: 100, Male: 50, Female: 50, Literate: 60, FemaleLiterate: 30, MaleLiterate: 30, Latitude: 10, Longitude: 70},
		{State: "A", District: "A2", Population: 200, Male: 90, Female: 110, Literate: 150, FemaleLiterate: 70, MaleLiterate: 80, Latitude: 12, Longitude: 72},
		{State: "A", District: "A3", Population: 300, Male: 160, Female: 140, Literate: 200, FemaleLiterate: 90, MaleLiterate: 110, Latitude: 14, Longitude: 74},
		{State: "B", District: "B1", Population: 818008, Male: 0, Female: 400, Literate: 100, FemaleLiterate: 100, MaleLiterate: 0, Latitude: 20, Longitude: 80},
	}))
}

func selectionFor(scopeName string, k chart.Kind, plot bool) selection.Selection {
	return selection.Selection{
		Scope:     scopeName,
		Primary:   census.Population,
		Secondary: census.LiteracyRate,
		Chart:     k,
		Plot:      plot,
	}
}

func TestCycle_Welcome(t *testing.T) {
	sel := selection.Default(selection.BuildOptions(testFrame()))
	sel.Plot = true

	pass := Cycle{Frame: testFrame(), Selection: sel}.Run()
	assert.Equal(t, selection.Welcome, pass.Phase)
	assert.Nil(t, pass.Working)
	assert.Equal(t, chart.Result{}, pass.Result)
}

func TestCycle_ConfiguringBuildsWorkingOnly(t *testing.T) {
	pass := Cycle{Frame: testFrame(), Selection: selectionFor("A", chart.Bar, false)}.Run()

	assert.Equal(t, selection.Configuring, pass.Phase)
	require.NotNil(t, pass.Working)
	assert.Equal(t, 3, pass.Working.Frame.Len())
	assert.Equal(t, census.District, pass.Working.Axis)
	assert.Nil(t, pass.Result.Figure)
	assert.Empty(t, pass.Result.Captions)
}

func TestCycle_Rendered(t *testing.T) {
	pass := Cycle{Frame: testFrame(), Selection: selectionFor("A", chart.Pie, true)}.Run()

	assert.Equal(t, selection.Rendered, pass.Phase)
	require.NotNil(t, pass.Result.Figure)
	assert.Equal(t, []chart.Slice{
		{Label: "A1", Value: 100},
		{Label: "A2", Value: 200},
		{Label: "A3", Value: 300},
	}, pass.Result.Figure.Slices)
	assert.Len(t, pass.Result.Captions, 2)
}

func TestCycle_OverallWithChartIsNotWelcome(t *testing.T) {
	pass := Cycle{Frame: testFrame(), Selection: selectionFor(scope.Overall, chart.Bar, true)}.Run()

	assert.Equal(t, selection.Rendered, pass.Phase)
	require.NotNil(t, pass.Result.Figure)
	assert.Equal(t, []string{"A", "B"}, pass.Result.Figure.Categories)
}

func TestCycle_DispatcherDefaults(t *testing.T) {
	pass := Cycle{Frame: testFrame(), Selection: selectionFor("A", chart.Mapbox, true)}.Run()
	require.NotNil(t, pass.Result.Figure)
	assert.Equal(t, chart.DefaultZoom, pass.Result.Figure.Zoom)

	pass = Cycle{
		Frame:      testFrame(),
		Selection:  selectionFor("A", chart.Mapbox, true),
		Dispatcher: chart.Dispatcher{Zoom: 7, MapStyle: "carto-darkmatter"},
	}.Run()
	require.NotNil(t, pass.Result.Figure)
	assert.Equal(t, 7, pass.Result.Figure.Zoom)
	assert.Equal(t, "carto-darkmatter", pass.Result.Figure.MapStyle)
}

func TestCycle_DoesNotModifyFrame(t *testing.T) {
	f := testFrame()
	cols := f.Columns()
	Cycle{Frame: f, Selection: selectionFor(scope.Overall, chart.Line, true)}.Run()
	assert.Equal(t, cols, f.Columns())
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, []float64{100, 200, 300, 818008}, f.Float(census.Population))
}
