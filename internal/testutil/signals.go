// Package testutil provides deterministic signals and assertion helpers
// for tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// ClickTrain synthesizes exponentially decaying 2 kHz tone bursts at the
// given sample offsets, a cheap stand-in for percussive note onsets.
func ClickTrain(sampleRate float64, length int, positions []int) []float64 {
	const (
		burstLen  = 512
		burstHz   = 2000.0
		decaySamp = 128.0
	)

	out := make([]float64, length)
	step := 2 * math.Pi * burstHz / sampleRate
	for _, p := range positions {
		for i := 0; i < burstLen && p+i < length; i++ {
			out[p+i] += math.Sin(step*float64(i)) * math.Exp(-float64(i)/decaySamp)
		}
	}
	return out
}
