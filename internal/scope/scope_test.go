package scope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/census-dash/internal/census"
)

func testFrame() *census.Frame {
	nan := math.NaN()
	return census.Derive(census.FromRecords([]census.Record{
		// Uneven district sizes so the rollup sex ratio differs from the mean of ratios.
		{State: "Kerala", District: "Kollam", Population: 3000, Male: 1000, Female: 2000,
			Literate: 2700, FemaleLiterate: 1800, MaleLiterate: 900, Latitude: 8.9, Longitude: 76.6,
			TotalPowerParity: 50, PowerParityAbove545000: 5, PowerParity90000To150000: 20},
		{State: "Kerala", District: "Wayanad", Population: 200, Male: 100, Female: 100,
			Literate: 150, FemaleLiterate: 70, MaleLiterate: 80, Latitude: 11.7, Longitude: 76.1,
			TotalPowerParity: 10, PowerParityAbove545000: nan, PowerParity90000To150000: 4},
		{State: "Goa", District: "North Goa", Population: 800, Male: 410, Female: 390,
			Literate: 650, FemaleLiterate: 310, MaleLiterate: 340, Latitude: 15.5, Longitude: 73.9},
		{State: "Goa", District: "Unmapped", Population: 100, Male: 50, Female: 50,
			Literate: 90, FemaleLiterate: 40, MaleLiterate: 50, Latitude: nan, Longitude: 74.0},
		{State: "Assam", District: "Nowhere", Population: 10, Male: 5, Female: 5,
			Literate: 5, FemaleLiterate: 2, MaleLiterate: 3, Latitude: nan, Longitude: nan},
	}))
}

func rowOf(t *testing.T, f *census.Frame, state string) int {
	t.Helper()
	for i, s := range f.Text(census.State) {
		if s == state {
			return i
		}
	}
	t.Fatalf("state %q not in rollup", state)
	return -1
}

func TestCompute_OverallRollup(t *testing.T) {
	w := Compute(testFrame(), Overall)

	assert.Equal(t, "State", w.AxisLabel())
	assert.Equal(t, Overall, w.Scope)
	assert.Equal(t, []string{"Assam", "Goa", "Kerala"}, w.Categories(), "one row per state, sorted")
}

func TestRollup_PopulationIsSumOfDistricts(t *testing.T) {
	src := testFrame()
	roll := Rollup(src)

	want := map[string]float64{}
	states := src.Text(census.State)
	for i, p := range src.Float(census.Population) {
		want[states[i]] += p
	}
	for state, total := range want {
		assert.Equal(t, total, roll.Float(census.Population)[rowOf(t, roll, state)], state)
	}
}

func TestRollup_SexRatioFromSummedCounts(t *testing.T) {
	roll := Rollup(testFrame())
	got := roll.Float(census.SexRatio)[rowOf(t, roll, "Kerala")]

	fromSums := (2000.0 + 100.0) / (1000.0 + 100.0) * 1000
	meanOfRatios := (2000.0/1000.0*1000 + 100.0/100.0*1000) / 2

	assert.InDelta(t, fromSums, got, 1e-9)
	assert.NotEqual(t, meanOfRatios, got)
	assert.Greater(t, math.Abs(got-meanOfRatios), 1.0)
}

func TestRollup_LiteracyRatesRecomputed(t *testing.T) {
	roll := Rollup(testFrame())
	i := rowOf(t, roll, "Goa")

	assert.InDelta(t, 740.0/900.0*100, roll.Float(census.LiteracyRate)[i], 1e-9)
	assert.InDelta(t, 350.0/440.0*100, roll.Float(census.FemaleLiteracyRate)[i], 1e-9)
	assert.InDelta(t, 390.0/460.0*100, roll.Float(census.MaleLiteracyRate)[i], 1e-9)
}

func TestRollup_DropsIntermediates(t *testing.T) {
	roll := Rollup(testFrame())
	for _, c := range census.Intermediates {
		assert.False(t, roll.Has(c), "%s should be dropped", c)
	}
	assert.False(t, roll.Has(census.District))
	for _, c := range census.Metrics {
		assert.True(t, roll.Has(c), "%s should be present", c)
	}
}

func TestRollup_SkipsMissingValues(t *testing.T) {
	roll := Rollup(testFrame())
	kerala := rowOf(t, roll, "Kerala")
	goa := rowOf(t, roll, "Goa")
	assam := rowOf(t, roll, "Assam")

	assert.Equal(t, 5.0, roll.Float(census.PowerParityAbove545000)[kerala], "NaN skipped in sum")
	assert.InDelta(t, (8.9+11.7)/2, roll.Float(census.Latitude)[kerala], 1e-9)
	assert.InDelta(t, 15.5, roll.Float(census.Latitude)[goa], 1e-9, "NaN skipped in mean")
	assert.InDelta(t, (73.9+74.0)/2, roll.Float(census.Longitude)[goa], 1e-9)
	assert.True(t, math.IsNaN(roll.Float(census.Latitude)[assam]), "all-missing mean is NaN")
}

func TestCompute_StateSlice(t *testing.T) {
	w := Compute(testFrame(), "Goa")

	assert.Equal(t, "District", w.AxisLabel())
	assert.Equal(t, []string{"North Goa"}, w.Categories(), "row without latitude excluded")
	for i := range w.Frame.Len() {
		assert.False(t, math.IsNaN(w.Frame.Float(census.Latitude)[i]))
		assert.False(t, math.IsNaN(w.Frame.Float(census.Longitude)[i]))
	}
}

func TestCompute_StateSliceReusesRatios(t *testing.T) {
	src := testFrame()
	w := Compute(src, "Kerala")

	require.Equal(t, 2, w.Frame.Len())
	assert.Equal(t, src.Float(census.SexRatio)[:2], w.Frame.Float(census.SexRatio))
	assert.True(t, w.Frame.Has(census.Literate), "district rows keep their raw columns")
}

func TestCompute_UnknownStateIsEmpty(t *testing.T) {
	w := Compute(testFrame(), "Atlantis")
	assert.Equal(t, 0, w.Frame.Len())
	assert.Empty(t, w.Categories())
}

func TestCompute_DoesNotModifySource(t *testing.T) {
	src := testFrame()
	before := src.Columns()
	_ = Compute(src, Overall)
	_ = Compute(src, "Goa")
	assert.Equal(t, before, src.Columns())
	assert.Equal(t, 5, src.Len())
}
