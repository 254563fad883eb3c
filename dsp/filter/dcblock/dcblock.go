// Package dcblock implements a first-order DC-blocking IIR filter.
//
// The filter realizes y[n] = x[n] - x[n-1] + r*y[n-1], a high-pass with a
// zero at DC. r close to 1 keeps the pass band flat while removing the
// running offset of a signal.
package dcblock

import "fmt"

// Filter is a stateful single-channel DC blocker.
//
// The zero value is not usable; construct with [New]. Not safe for
// concurrent use.
type Filter struct {
	r  float64
	x1 float64
	y1 float64
}

// New creates a DC blocker with pole radius r, which must lie in [0, 1).
func New(r float64) (*Filter, error) {
	if r < 0 || r >= 1 {
		return nil, fmt.Errorf("dcblock: pole radius must be in [0, 1): %f", r)
	}
	return &Filter{r: r}, nil
}

// R returns the pole radius.
func (f *Filter) R() float64 { return f.r }

// Reset clears the filter state.
func (f *Filter) Reset() {
	f.x1 = 0
	f.y1 = 0
}

// Process filters src into dst. Both slices must have the same length;
// src and dst may alias.
func (f *Filter) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("dcblock: dst/src length mismatch: %d != %d", len(dst), len(src))
	}

	x1, y1, r := f.x1, f.y1, f.r
	for i, x := range src {
		y := x - x1 + r*y1
		dst[i] = y
		x1, y1 = x, y
	}
	f.x1, f.y1 = x1, y1

	return nil
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	_ = f.Process(buf, buf)
}
