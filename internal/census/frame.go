package census

import (
	"math"
	"slices"

	"github.com/rotisserie/eris"
)

// Frame is an immutable column-oriented table. Text columns hold names
// (State, District); every other column holds float64 values where NaN
// marks a missing or unparseable cell.
//
// Frames share column storage: Clone, Drop and Put never copy values, so
// callers must not modify slices returned by Text or Float.
type Frame struct {
	columns []Column
	text    map[Column][]string
	num     map[Column][]float64
	rows    int
}

// NewFrame creates an empty frame with the given row count.
func NewFrame(rows int) *Frame {
	return &Frame{
		text: make(map[Column][]string),
		num:  make(map[Column][]float64),
		rows: rows,
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Columns returns the column names in frame order.
func (f *Frame) Columns() []Column { return slices.Clone(f.columns) }

// Has reports whether the frame carries the column.
func (f *Frame) Has(c Column) bool { return slices.Contains(f.columns, c) }

// Text returns a text column, or nil when absent.
func (f *Frame) Text(c Column) []string { return f.text[c] }

// Float returns a numeric column, or nil when absent.
func (f *Frame) Float(c Column) []float64 { return f.num[c] }

// FloatOrNaN returns a numeric column, or a NaN-filled column when absent.
func (f *Frame) FloatOrNaN(c Column) []float64 {
	if v, ok := f.num[c]; ok {
		return v
	}
	return nanColumn(f.rows)
}

// PutText returns a copy of the frame with the text column set.
func (f *Frame) PutText(c Column, vals []string) (*Frame, error) {
	if len(vals) != f.rows {
		return nil, eris.Errorf("census: column %q has %d rows, frame has %d", c, len(vals), f.rows)
	}
	out := f.Clone()
	delete(out.num, c)
	out.text[c] = vals
	out.add(c)
	return out, nil
}

// PutFloat returns a copy of the frame with the numeric column set.
func (f *Frame) PutFloat(c Column, vals []float64) (*Frame, error) {
	if len(vals) != f.rows {
		return nil, eris.Errorf("census: column %q has %d rows, frame has %d", c, len(vals), f.rows)
	}
	out := f.Clone()
	delete(out.text, c)
	out.num[c] = vals
	out.add(c)
	return out, nil
}

// Clone returns a shallow copy sharing column storage.
func (f *Frame) Clone() *Frame {
	out := NewFrame(f.rows)
	out.columns = slices.Clone(f.columns)
	for k, v := range f.text {
		out.text[k] = v
	}
	for k, v := range f.num {
		out.num[k] = v
	}
	return out
}

// Drop returns a copy without the given columns.
func (f *Frame) Drop(cols ...Column) *Frame {
	out := f.Clone()
	for _, c := range cols {
		delete(out.text, c)
		delete(out.num, c)
	}
	out.columns = slices.DeleteFunc(out.columns, func(c Column) bool {
		return slices.Contains(cols, c)
	})
	return out
}

// Filter returns the rows for which keep reports true, in order.
func (f *Frame) Filter(keep func(i int) bool) *Frame {
	var idx []int
	for i := range f.rows {
		if keep(i) {
			idx = append(idx, i)
		}
	}

	out := NewFrame(len(idx))
	out.columns = slices.Clone(f.columns)
	for c, vals := range f.text {
		sel := make([]string, len(idx))
		for j, i := range idx {
			sel[j] = vals[i]
		}
		out.text[c] = sel
	}
	for c, vals := range f.num {
		sel := make([]float64, len(idx))
		for j, i := range idx {
			sel[j] = vals[i]
		}
		out.num[c] = sel
	}
	return out
}

func (f *Frame) add(c Column) {
	if !slices.Contains(f.columns, c) {
		f.columns = append(f.columns, c)
	}
}

func nanColumn(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
