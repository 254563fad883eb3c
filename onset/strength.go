package onset

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-onset/dsp/filter/dcblock"
	"github.com/cwbudde/algo-onset/dsp/spectrum"
)

// detrendPole is the pole radius of the detrend high-pass, matching the
// IIR [1, -1]/[1, -0.99].
const detrendPole = 0.99

// Strength computes the onset strength envelope of a signal.
//
// The signal is converted to a log-amplitude feature matrix (by default a
// mel power spectrogram), and the envelope is the frequency-aggregated
// positive spectral flux, one value per frame. With centering enabled
// (the default) the envelope gains fftSize/(2*hop) leading zero frames to
// compensate the windowing delay of the transform.
func Strength(signal []float64, sampleRate float64, opts ...Option) ([]float64, error) {
	cfg := applyOptions(opts)

	if len(signal) == 0 {
		return nil, ErrNoSpectralInput
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("onset: sample rate must be > 0: %f", sampleRate)
	}

	s, err := cfg.runFeature(signal, sampleRate)
	if err != nil {
		return nil, err
	}

	for _, row := range s {
		for i, v := range row {
			row[i] = math.Abs(v)
		}
	}
	s = spectrum.LogAmplitudeMatrix(s)

	return strengthFromSpectrogram(s, cfg)
}

// StrengthSpectral computes the onset strength envelope from a precomputed
// (log-scaled) spectrogram, laid out bands x frames.
func StrengthSpectral(s [][]float64, opts ...Option) ([]float64, error) {
	cfg := applyOptions(opts)

	if len(s) == 0 {
		return nil, ErrNoSpectralInput
	}

	return strengthFromSpectrogram(s, cfg)
}

func strengthFromSpectrogram(s [][]float64, cfg config) ([]float64, error) {
	numFrames := 0
	if len(s) > 0 {
		numFrames = len(s[0])
	}
	for r := 1; r < len(s); r++ {
		if len(s[r]) != numFrames {
			return nil, fmt.Errorf("onset: ragged spectrogram: row %d has %d frames, row 0 has %d", r, len(s[r]), numFrames)
		}
	}

	env := make([]float64, numFrames)
	diffs := make([]float64, len(s))

	if numFrames > 0 {
		// A zero column is prepended to the flux so the envelope stays
		// aligned with the spectrogram frames.
		env[0] = cfg.aggregate(diffs)
	}

	for t := 1; t < numFrames; t++ {
		for r, row := range s {
			d := row[t] - row[t-1]
			if d < 0 {
				d = 0
			}
			diffs[r] = d
		}
		env[t] = cfg.aggregate(diffs)
	}

	if cfg.centering {
		pad := cfg.fftSize / (2 * cfg.hopLength)
		env = append(make([]float64, pad), env...)
	}

	if cfg.detrend {
		hp, err := dcblock.New(detrendPole)
		if err != nil {
			return nil, err
		}
		hp.ProcessInPlace(env)
	}

	return env, nil
}
