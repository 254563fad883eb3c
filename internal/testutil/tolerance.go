package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireNonNegative fails t if any element is negative, NaN or Inf.
func RequireNonNegative(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: value %v, want finite and >= 0", i, v)
		}
	}
}

// RequireStrictlyIncreasing fails t if indices are not strictly increasing
// or two neighbors are minGap or fewer apart.
func RequireStrictlyIncreasing(t *testing.T, indices []int, minGap int) {
	t.Helper()
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			t.Fatalf("indices not strictly increasing at %d: %v", i, indices)
		}
		if indices[i]-indices[i-1] <= minGap {
			t.Fatalf("indices %d and %d closer than %d", indices[i-1], indices[i], minGap)
		}
	}
}
