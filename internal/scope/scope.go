// Package scope builds the working table for the selected geography: a
// per-state rollup of the whole country, or the district rows of one state.
package scope

import (
	"math"
	"slices"

	"github.com/sells-group/census-dash/internal/census"
)

// Overall is the whole-country sentinel offered ahead of the state names.
const Overall = "Overall India"

// Working is the table a chart is drawn from.
type Working struct {
	Frame *census.Frame
	Axis  census.Column // State for the rollup, District for a single state
	Scope string
}

// AxisLabel returns the category axis title.
func (w Working) AxisLabel() string { return string(w.Axis) }

// Categories returns the axis column values.
func (w Working) Categories() []string {
	if cats := w.Frame.Text(w.Axis); cats != nil {
		return cats
	}
	return make([]string, w.Frame.Len())
}

// Compute returns the working table for scopeName. It is pure: f is not
// modified and nothing is retained between calls.
func Compute(f *census.Frame, scopeName string) Working {
	if scopeName == Overall {
		return Working{Frame: Rollup(f), Axis: census.State, Scope: scopeName}
	}
	return Working{Frame: Districts(f, scopeName), Axis: census.District, Scope: scopeName}
}

// Rollup groups f by State, one row per state in ascending name order.
// Counts are summed and coordinates averaged, skipping NaN cells; an
// all-missing sum is 0 and an all-missing mean is NaN. Ratios are
// recomputed from the summed counts and the literacy counts are dropped.
func Rollup(f *census.Frame) *census.Frame {
	states := f.Text(census.State)

	groups := make(map[string][]int)
	for i, s := range states {
		groups[s] = append(groups[s], i)
	}
	names := make([]string, 0, len(groups))
	for s := range groups {
		names = append(names, s)
	}
	slices.Sort(names)

	out := census.NewFrame(len(names))
	out, _ = out.PutText(census.State, names)

	aggregate := func(c census.Column, agg func(vals []float64, idx []int) float64) {
		if !f.Has(c) {
			return
		}
		vals := f.Float(c)
		col := make([]float64, len(names))
		for j, s := range names {
			col[j] = agg(vals, groups[s])
		}
		out, _ = out.PutFloat(c, col)
	}
	for _, c := range census.Counts {
		aggregate(c, sum)
	}
	for _, c := range census.Coordinates {
		aggregate(c, mean)
	}

	return census.Derive(out).Drop(census.Intermediates...)
}

// Districts returns the rows of state whose Latitude and Longitude are
// both present. Ratio columns are carried over unchanged.
func Districts(f *census.Frame, state string) *census.Frame {
	states := f.Text(census.State)
	lat := f.FloatOrNaN(census.Latitude)
	lon := f.FloatOrNaN(census.Longitude)
	return f.Filter(func(i int) bool {
		return states != nil && states[i] == state && !math.IsNaN(lat[i]) && !math.IsNaN(lon[i])
	})
}

func sum(vals []float64, idx []int) float64 {
	var total float64
	for _, i := range idx {
		if !math.IsNaN(vals[i]) {
			total += vals[i]
		}
	}
	return total
}

func mean(vals []float64, idx []int) float64 {
	var total float64
	var n int
	for _, i := range idx {
		if !math.IsNaN(vals[i]) {
			total += vals[i]
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}
