// Package mel implements mel-scale filterbanks and mel spectrograms.
//
// The mel scale follows the Slaney convention: linear below 1 kHz,
// logarithmic above, with area-normalized triangular filters.
package mel

import (
	"fmt"
	"math"
)

const (
	// Slaney mel scale: 200/3 Hz per mel below the 1 kHz break point,
	// then log-spaced with a step of log(6.4)/27 mels.
	linearStep   = 200.0 / 3.0
	breakHz      = 1000.0
	breakMel     = breakHz / linearStep
	logStep      = 0.06875177742094912 // math.Log(6.4) / 27
	defaultBands = 128
)

// HzToMel converts a frequency in Hz to mels.
func HzToMel(hz float64) float64 {
	if hz < breakHz {
		return hz / linearStep
	}
	return breakMel + math.Log(hz/breakHz)/logStep
}

// MelToHz converts a frequency in mels to Hz.
func MelToHz(mel float64) float64 {
	if mel < breakMel {
		return mel * linearStep
	}
	return breakHz * math.Exp(logStep*(mel-breakMel))
}

// Frequencies returns n frequencies in Hz, equally spaced on the mel scale
// between minHz and maxHz inclusive.
func Frequencies(n int, minHz, maxHz float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{minHz}
	}

	minMel := HzToMel(minHz)
	maxMel := HzToMel(maxHz)
	step := (maxMel - minMel) / float64(n-1)

	out := make([]float64, n)
	for i := range out {
		out[i] = MelToHz(minMel + step*float64(i))
	}
	return out
}

// FilterBank returns a bands x (fftSize/2+1) matrix of triangular mel
// filters spanning [minHz, maxHz].
//
// Each filter is scaled by 2/bandwidth so that filterbank output is
// approximately energy-preserving across the spectrum.
func FilterBank(sampleRate float64, fftSize, bands int, minHz, maxHz float64) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("mel: sample rate must be > 0: %f", sampleRate)
	}
	if fftSize <= 0 {
		return nil, fmt.Errorf("mel: fft size must be > 0: %d", fftSize)
	}
	if bands <= 0 {
		return nil, fmt.Errorf("mel: band count must be > 0: %d", bands)
	}
	if minHz < 0 || maxHz <= minHz {
		return nil, fmt.Errorf("mel: invalid frequency range [%f, %f]", minHz, maxHz)
	}
	if maxHz > sampleRate/2 {
		return nil, fmt.Errorf("mel: max frequency %f above Nyquist %f", maxHz, sampleRate/2)
	}

	numBins := fftSize/2 + 1
	binHz := make([]float64, numBins)
	for i := range binHz {
		binHz[i] = float64(i) * sampleRate / float64(fftSize)
	}

	// bands+2 edge frequencies: each filter ramps up from edge i to i+1
	// and back down to i+2.
	edges := Frequencies(bands+2, minHz, maxHz)

	weights := make([][]float64, bands)
	for m := range weights {
		weights[m] = make([]float64, numBins)

		lo, center, hi := edges[m], edges[m+1], edges[m+2]
		enorm := 2.0 / (hi - lo)

		for b, f := range binHz {
			lower := (f - lo) / (center - lo)
			upper := (hi - f) / (hi - center)

			w := math.Min(lower, upper)
			if w > 0 {
				weights[m][b] = w * enorm
			}
		}
	}

	return weights, nil
}
