// Package stft computes short-time Fourier transform spectrograms.
//
// Frames are taken every hop samples starting at the beginning of the
// signal, without center padding. Callers that need to compensate the
// windowing delay shift their results by fftSize/(2*hop) frames.
package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-onset/dsp/spectrum"
	"github.com/cwbudde/algo-onset/dsp/window"
)

const minFFTSize = 16

// Option configures an Analyzer.
type Option func(*config)

type config struct {
	windowType window.Type
}

func defaultConfig() config {
	return config{windowType: window.TypeHann}
}

// WithWindow selects the analysis window type.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.windowType = t
	}
}

// Analyzer computes magnitude and power spectrograms over an FFT plan.
//
// An Analyzer owns its plan and work buffers and is not safe for concurrent
// use; create one per goroutine.
type Analyzer struct {
	fftSize   int
	hopLength int

	plan         *algofft.Plan[complex128]
	windowCoeffs []float64

	timeFrame []complex128
	bins      []complex128
	column    []float64
}

// New creates an Analyzer for the given FFT size and hop length.
//
// fftSize must be a power of two and at least 16. hopLength must be > 0.
func New(fftSize, hopLength int, opts ...Option) (*Analyzer, error) {
	if fftSize < minFFTSize || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("stft: fft size must be a power of two >= %d: %d", minFFTSize, fftSize)
	}
	if hopLength <= 0 {
		return nil, fmt.Errorf("stft: hop length must be > 0: %d", hopLength)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	numBins := fftSize/2 + 1

	return &Analyzer{
		fftSize:      fftSize,
		hopLength:    hopLength,
		plan:         plan,
		windowCoeffs: window.Generate(cfg.windowType, fftSize, window.WithPeriodic()),
		timeFrame:    make([]complex128, fftSize),
		bins:         make([]complex128, fftSize),
		column:       make([]float64, numBins),
	}, nil
}

// FFTSize returns the FFT frame size.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// HopLength returns the hop length in samples.
func (a *Analyzer) HopLength() int { return a.hopLength }

// NumBins returns the number of non-redundant frequency bins per frame.
func (a *Analyzer) NumBins() int { return a.fftSize/2 + 1 }

// NumFrames returns the number of full analysis frames in a signal of the
// given length.
func (a *Analyzer) NumFrames(signalLen int) int {
	if signalLen < a.fftSize {
		return 0
	}
	return 1 + (signalLen-a.fftSize)/a.hopLength
}

// Magnitudes returns the magnitude spectrogram of signal as a
// bins x frames matrix.
func (a *Analyzer) Magnitudes(signal []float64) ([][]float64, error) {
	return a.spectrogram(signal, spectrum.MagnitudeTo)
}

// Powers returns the power spectrogram of signal as a bins x frames matrix.
func (a *Analyzer) Powers(signal []float64) ([][]float64, error) {
	return a.spectrogram(signal, spectrum.PowerTo)
}

func (a *Analyzer) spectrogram(signal []float64, extract func(dst []float64, in []complex128)) ([][]float64, error) {
	numBins := a.NumBins()
	numFrames := a.NumFrames(len(signal))

	out := make([][]float64, numBins)
	for b := range out {
		out[b] = make([]float64, numFrames)
	}

	for t := 0; t < numFrames; t++ {
		start := t * a.hopLength
		for i := 0; i < a.fftSize; i++ {
			a.timeFrame[i] = complex(signal[start+i]*a.windowCoeffs[i], 0)
		}

		if err := a.plan.Forward(a.bins, a.timeFrame); err != nil {
			return nil, fmt.Errorf("stft: forward FFT failed: %w", err)
		}

		extract(a.column, a.bins[:numBins])
		for b := 0; b < numBins; b++ {
			out[b][t] = a.column[b]
		}
	}

	return out, nil
}

// Magnitudes is a one-shot convenience over [Analyzer.Magnitudes].
func Magnitudes(signal []float64, fftSize, hopLength int, opts ...Option) ([][]float64, error) {
	a, err := New(fftSize, hopLength, opts...)
	if err != nil {
		return nil, err
	}
	return a.Magnitudes(signal)
}

// Powers is a one-shot convenience over [Analyzer.Powers].
func Powers(signal []float64, fftSize, hopLength int, opts ...Option) ([][]float64, error) {
	a, err := New(fftSize, hopLength, opts...)
	if err != nil {
		return nil, err
	}
	return a.Powers(signal)
}
