package mel

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-onset/dsp/stft"
	"github.com/cwbudde/algo-onset/dsp/window"
)

const (
	defaultFFTSize   = 2048
	defaultHopLength = 512
)

// Option configures mel spectrogram computation.
type Option func(*config)

type config struct {
	fftSize    int
	hopLength  int
	bands      int
	minHz      float64
	maxHz      float64 // 0 means Nyquist
	windowType window.Type
}

func defaultSpectrogramConfig() config {
	return config{
		fftSize:    defaultFFTSize,
		hopLength:  defaultHopLength,
		bands:      defaultBands,
		windowType: window.TypeHann,
	}
}

// WithFFTSize sets the STFT frame size.
func WithFFTSize(fftSize int) Option {
	return func(c *config) {
		if fftSize > 0 {
			c.fftSize = fftSize
		}
	}
}

// WithHopLength sets the STFT hop length in samples.
func WithHopLength(hopLength int) Option {
	return func(c *config) {
		if hopLength > 0 {
			c.hopLength = hopLength
		}
	}
}

// WithBands sets the number of mel bands.
func WithBands(bands int) Option {
	return func(c *config) {
		if bands > 0 {
			c.bands = bands
		}
	}
}

// WithFrequencyRange restricts the filterbank to [minHz, maxHz].
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(c *config) {
		if minHz >= 0 && maxHz > minHz {
			c.minHz = minHz
			c.maxHz = maxHz
		}
	}
}

// WithWindow selects the STFT analysis window.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.windowType = t
	}
}

// Spectrogram computes a mel-scale power spectrogram as a bands x frames
// matrix: the STFT power spectrogram projected through [FilterBank].
func Spectrogram(signal []float64, sampleRate float64, opts ...Option) ([][]float64, error) {
	cfg := defaultSpectrogramConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	maxHz := cfg.maxHz
	if maxHz == 0 {
		maxHz = sampleRate / 2
	}

	bank, err := FilterBank(sampleRate, cfg.fftSize, cfg.bands, cfg.minHz, maxHz)
	if err != nil {
		return nil, err
	}

	powers, err := stft.Powers(signal, cfg.fftSize, cfg.hopLength, stft.WithWindow(cfg.windowType))
	if err != nil {
		return nil, err
	}

	return project(bank, powers), nil
}

// project computes bank x powers, skipping the zero weights outside each
// triangle.
func project(bank, powers [][]float64) [][]float64 {
	numFrames := 0
	if len(powers) > 0 {
		numFrames = len(powers[0])
	}

	out := make([][]float64, len(bank))
	if numFrames == 0 {
		for m := range out {
			out[m] = make([]float64, 0)
		}
		return out
	}

	scaled := make([]float64, numFrames)
	for m, filter := range bank {
		out[m] = make([]float64, numFrames)
		for b, w := range filter {
			if w == 0 || b >= len(powers) {
				continue
			}
			vecmath.ScaleBlock(scaled, powers[b], w)
			vecmath.AddBlockInPlace(out[m], scaled)
		}
	}

	return out
}
