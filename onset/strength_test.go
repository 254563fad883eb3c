package onset

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-onset/dsp/filter/dcblock"
	"github.com/cwbudde/algo-onset/internal/testutil"
)

func TestStrengthSpectralFlux(t *testing.T) {
	s := [][]float64{
		{0, 1, 3},
		{0, 2, 1},
		{0, 0, 10},
	}

	env, err := StrengthSpectral(s, WithoutCentering())
	if err != nil {
		t.Fatalf("StrengthSpectral error: %v", err)
	}

	// Flux columns: prepended zeros, then mean([1 2 0]) and
	// mean([2 0 10]); decreases are clipped.
	testutil.RequireSliceNearlyEqual(t, env, []float64{0, 1, 4}, 1e-12)
}

func TestStrengthSpectralMedianAggregate(t *testing.T) {
	s := [][]float64{
		{0, 1, 3},
		{0, 2, 1},
		{0, 0, 10},
	}

	env, err := StrengthSpectral(s, WithoutCentering(), WithAggregate(Median))
	if err != nil {
		t.Fatalf("StrengthSpectral error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, env, []float64{0, 1, 2}, 1e-12)
}

func TestStrengthSpectralNonNegative(t *testing.T) {
	// Wildly varying input with plenty of decreasing columns.
	s := make([][]float64, 16)
	seed := uint64(7)
	for r := range s {
		s[r] = make([]float64, 64)
		for i := range s[r] {
			seed = seed*6364136223846793005 + 1442695040888963407
			s[r][i] = float64(int64(seed>>30))/float64(1<<33) - 0.5
		}
	}

	env, err := StrengthSpectral(s, WithoutCentering())
	if err != nil {
		t.Fatalf("StrengthSpectral error: %v", err)
	}

	testutil.RequireNonNegative(t, env)
}

func TestStrengthSpectralCenteringPad(t *testing.T) {
	s := [][]float64{{0, 1, 2, 3}}

	// Defaults: fftSize 2048, hop 64 => floor(2048/128) = 16 pad frames.
	env, err := StrengthSpectral(s)
	if err != nil {
		t.Fatalf("StrengthSpectral error: %v", err)
	}

	if len(env) != 4+16 {
		t.Fatalf("envelope length %d, want 20", len(env))
	}
	for i := 0; i < 16; i++ {
		if env[i] != 0 {
			t.Fatalf("pad frame %d is %v, want 0", i, env[i])
		}
	}
}

func TestStrengthSpectralDetrendMatchesFilter(t *testing.T) {
	s := [][]float64{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{0, 2, 4, 6, 8, 10, 12, 14},
	}

	plain, err := StrengthSpectral(s, WithoutCentering())
	if err != nil {
		t.Fatalf("StrengthSpectral error: %v", err)
	}

	detrended, err := StrengthSpectral(s, WithoutCentering(), WithDetrend())
	if err != nil {
		t.Fatalf("StrengthSpectral error: %v", err)
	}

	hp, err := dcblock.New(0.99)
	if err != nil {
		t.Fatalf("dcblock.New error: %v", err)
	}
	want := make([]float64, len(plain))
	if err := hp.Process(want, plain); err != nil {
		t.Fatalf("Process error: %v", err)
	}

	for i := range want {
		if math.Abs(detrended[i]-want[i]) > 1e-12 {
			t.Fatalf("env[%d]=%v, want %v", i, detrended[i], want[i])
		}
	}
}

func TestStrengthSpectralRaggedInput(t *testing.T) {
	if _, err := StrengthSpectral([][]float64{{1, 2}, {1}}); err == nil {
		t.Fatal("expected error for ragged spectrogram")
	}
}

func TestStrengthMissingInput(t *testing.T) {
	if _, err := Strength(nil, 22050); !errors.Is(err, ErrNoSpectralInput) {
		t.Fatalf("Strength(nil) error = %v, want ErrNoSpectralInput", err)
	}
	if _, err := StrengthSpectral(nil); !errors.Is(err, ErrNoSpectralInput) {
		t.Fatalf("StrengthSpectral(nil) error = %v, want ErrNoSpectralInput", err)
	}
	if _, err := Strength([]float64{1, 2, 3}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestStrengthCustomFeature(t *testing.T) {
	feature := func(signal []float64, sampleRate float64, fftSize, hopLength int) ([][]float64, error) {
		return [][]float64{{1, 10, 10}}, nil
	}

	env, err := Strength(make([]float64, 64), 8000, WithFeature(feature), WithoutCentering())
	if err != nil {
		t.Fatalf("Strength error: %v", err)
	}

	// Log amplitude maps 1 -> 0 dB and 10 -> 10 dB; flux is the clipped
	// difference of the single row.
	want := []float64{0, 10, 0}
	for i := range want {
		if math.Abs(env[i]-want[i]) > 1e-9 {
			t.Fatalf("env[%d]=%v, want %v", i, env[i], want[i])
		}
	}
}

func TestAggregateBuiltins(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 6}); math.Abs(got-3) > 1e-15 {
		t.Fatalf("Mean=%v, want 3", got)
	}
	if got := Median([]float64{5, 1, 3}); got != 3 {
		t.Fatalf("Median odd=%v, want 3", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); math.Abs(got-2.5) > 1e-15 {
		t.Fatalf("Median even=%v, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil)=%v, want 0", got)
	}
}
