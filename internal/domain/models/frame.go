package models

import (
	"fmt"
	"math"
	"time"
)

// Frame is a table of daily float64 series sharing one date index.
// Column order is preserved as insertion order so downstream renderers
// see a stable layout.
type Frame struct {
	dates []time.Time
	names []string
	cols  map[string][]float64
}

// NewFrame creates an empty frame over the given date index.
func NewFrame(dates []time.Time) *Frame {
	return &Frame{
		dates: dates,
		cols:  make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.dates) }

// Dates returns the date index. Callers must not mutate it.
func (f *Frame) Dates() []time.Time { return f.dates }

// Names returns column names in insertion order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Has reports whether the column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// SetColumn adds or replaces a column. The values must match the index length.
func (f *Frame) SetColumn(name string, values []float64) error {
	if len(values) != len(f.dates) {
		return fmt.Errorf("column %s: %d values for %d rows", name, len(values), len(f.dates))
	}
	if _, exists := f.cols[name]; !exists {
		f.names = append(f.names, name)
	}
	f.cols[name] = values
	return nil
}

// Column returns the values for a column.
func (f *Frame) Column(name string) ([]float64, bool) {
	v, ok := f.cols[name]
	return v, ok
}

// At returns the value of a column at row i, or NaN if the column is missing.
func (f *Frame) At(name string, i int) float64 {
	v, ok := f.cols[name]
	if !ok || i < 0 || i >= len(v) {
		return math.NaN()
	}
	return v[i]
}

// Rename changes a column's name in place, keeping its position.
func (f *Frame) Rename(from, to string) bool {
	v, ok := f.cols[from]
	if !ok {
		return false
	}
	delete(f.cols, from)
	f.cols[to] = v
	for i, n := range f.names {
		if n == from {
			f.names[i] = to
			break
		}
	}
	return true
}

// Tail returns the trailing n rows. If n >= Len the frame is returned
// unchanged. The returned frame shares backing slices with the receiver;
// cached frames are treated as immutable so sharing is safe.
func (f *Frame) Tail(n int) *Frame {
	if n >= len(f.dates) {
		return f
	}
	off := len(f.dates) - n
	out := &Frame{
		dates: f.dates[off:],
		names: f.names,
		cols:  make(map[string][]float64, len(f.cols)),
	}
	for name, v := range f.cols {
		out.cols[name] = v[off:]
	}
	return out
}

// LastRow returns the latest row as a column->value map.
func (f *Frame) LastRow() map[string]float64 {
	return f.row(len(f.dates) - 1)
}

// PrevRow returns the second-to-last row.
func (f *Frame) PrevRow() map[string]float64 {
	return f.row(len(f.dates) - 2)
}

func (f *Frame) row(i int) map[string]float64 {
	out := make(map[string]float64, len(f.cols))
	if i < 0 || i >= len(f.dates) {
		return out
	}
	for name, v := range f.cols {
		out[name] = v[i]
	}
	return out
}

// FillGaps runs a forward fill then a backward fill on every column.
// A column that is entirely NaN stays entirely NaN; the ETL stage treats
// that as a hard failure.
func (f *Frame) FillGaps() {
	for _, v := range f.cols {
		forwardFill(v)
		backwardFill(v)
	}
}

// AllNaN reports whether the column has no finite observation at all.
func (f *Frame) AllNaN(name string) bool {
	v, ok := f.cols[name]
	if !ok {
		return true
	}
	for _, x := range v {
		if !math.IsNaN(x) {
			return false
		}
	}
	return true
}

func forwardFill(v []float64) {
	last := math.NaN()
	for i, x := range v {
		if math.IsNaN(x) {
			v[i] = last
		} else {
			last = x
		}
	}
}

func backwardFill(v []float64) {
	next := math.NaN()
	for i := len(v) - 1; i >= 0; i-- {
		if math.IsNaN(v[i]) {
			v[i] = next
		} else {
			next = v[i]
		}
	}
}
