package indicator

import (
	"fmt"
	"math"
	"time"
)

// Frame is a date-indexed table of float64 columns, one row per trading
// day. Columns keep insertion order so feature selection is stable.
type Frame struct {
	dates []time.Time
	order []string
	cols  map[string][]float64
}

// NewFrame creates an empty frame over the given dates. Compute is the
// usual constructor; this one serves callers that already hold columnar
// data.
func NewFrame(dates []time.Time) *Frame {
	return newFrame(dates)
}

func newFrame(dates []time.Time) *Frame {
	return &Frame{
		dates: dates,
		cols:  make(map[string][]float64),
	}
}

// Add attaches a column aligned with the frame's dates.
func (f *Frame) Add(name string, values []float64) error {
	if len(values) != len(f.dates) {
		return fmt.Errorf("column %s has %d values, frame has %d rows", name, len(values), len(f.dates))
	}
	f.add(name, values)
	return nil
}

func (f *Frame) add(name string, values []float64) {
	if _, ok := f.cols[name]; !ok {
		f.order = append(f.order, name)
	}
	f.cols[name] = values
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.dates) }

// Date returns the date of row i.
func (f *Frame) Date(i int) time.Time { return f.dates[i] }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// HasColumn reports whether the frame contains a column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the values of a named column, aligned with the dates.
func (f *Frame) Column(name string) ([]float64, bool) {
	vals, ok := f.cols[name]
	return vals, ok
}

// Value returns the cell at column name, row i.
func (f *Frame) Value(name string, i int) (float64, bool) {
	vals, ok := f.cols[name]
	if !ok || i < 0 || i >= len(vals) {
		return 0, false
	}
	return vals[i], true
}

// Row returns row i as a name-to-value map.
func (f *Frame) Row(i int) map[string]float64 {
	out := make(map[string]float64, len(f.order))
	for _, name := range f.order {
		out[name] = f.cols[name][i]
	}
	return out
}

// dropNaNRows returns a copy with every row containing a NaN removed.
// Infinities are kept; they are sanitized later during input
// preparation, not here.
func (f *Frame) dropNaNRows() *Frame {
	keep := make([]int, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		ok := true
		for _, name := range f.order {
			if math.IsNaN(f.cols[name][i]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}

	dates := make([]time.Time, len(keep))
	for j, i := range keep {
		dates[j] = f.dates[i]
	}
	out := newFrame(dates)
	for _, name := range f.order {
		src := f.cols[name]
		vals := make([]float64, len(keep))
		for j, i := range keep {
			vals[j] = src[i]
		}
		out.add(name, vals)
	}
	return out
}
