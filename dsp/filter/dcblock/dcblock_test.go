package dcblock

import (
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(-0.1); err == nil {
		t.Fatal("expected error for negative radius")
	}
	if _, err := New(1); err == nil {
		t.Fatal("expected error for radius 1")
	}
	if _, err := New(0.99); err != nil {
		t.Fatalf("New(0.99) error: %v", err)
	}
}

func TestImpulseResponse(t *testing.T) {
	f, err := New(0.99)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	in := make([]float64, 8)
	in[0] = 1
	out := make([]float64, len(in))
	if err := f.Process(out, in); err != nil {
		t.Fatalf("Process error: %v", err)
	}

	// h[0] = 1, h[1] = r - 1, h[n] = r*h[n-1] for n >= 2.
	if out[0] != 1 {
		t.Fatalf("h[0]=%v, want 1", out[0])
	}
	if math.Abs(out[1]-(-0.01)) > 1e-12 {
		t.Fatalf("h[1]=%v, want -0.01", out[1])
	}
	for n := 2; n < len(out); n++ {
		if math.Abs(out[n]-0.99*out[n-1]) > 1e-12 {
			t.Fatalf("h[%d]=%v, want %v", n, out[n], 0.99*out[n-1])
		}
	}
}

func TestRemovesDC(t *testing.T) {
	f, err := New(0.99)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	buf := make([]float64, 4096)
	for i := range buf {
		buf[i] = 0.7
	}
	f.ProcessInPlace(buf)

	// The step response decays geometrically towards zero.
	if math.Abs(buf[len(buf)-1]) > 1e-6 {
		t.Fatalf("tail=%v, want ~0", buf[len(buf)-1])
	}
}

func TestStatePersistsAcrossCalls(t *testing.T) {
	blockwise, err := New(0.9)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	oneshot, err := New(0.9)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	in := []float64{1, 0.5, -0.25, 0.125, 1, -1, 0, 0.5}

	whole := make([]float64, len(in))
	if err := oneshot.Process(whole, in); err != nil {
		t.Fatalf("Process error: %v", err)
	}

	split := make([]float64, len(in))
	if err := blockwise.Process(split[:4], in[:4]); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if err := blockwise.Process(split[4:], in[4:]); err != nil {
		t.Fatalf("Process error: %v", err)
	}

	for i := range whole {
		if math.Abs(whole[i]-split[i]) > 1e-15 {
			t.Fatalf("index %d: blockwise %v != oneshot %v", i, split[i], whole[i])
		}
	}
}

func TestReset(t *testing.T) {
	f, err := New(0.5)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	buf := []float64{1, 1, 1}
	f.ProcessInPlace(buf)
	f.Reset()

	again := []float64{1, 1, 1}
	f.ProcessInPlace(again)

	if again[0] != 1 {
		t.Fatalf("after reset, first output %v, want 1", again[0])
	}
}
