package onset

import (
	"math"

	"github.com/cwbudde/algo-onset/dsp/mel"
)

const (
	defaultFFTSize   = 2048
	defaultHopLength = 64
	defaultMelBands  = 128
)

// FeatureFunc computes a non-negative spectral feature matrix
// (bands x frames) from a signal. The result is converted to log
// amplitude before flux computation.
type FeatureFunc func(signal []float64, sampleRate float64, fftSize, hopLength int) ([][]float64, error)

// Option configures onset strength computation and detection.
type Option func(*config)

type config struct {
	fftSize   int
	hopLength int
	melBands  int
	minHz     float64
	maxHz     float64 // 0 means Nyquist

	centering bool
	detrend   bool

	aggregate AggregateFunc
	feature   FeatureFunc

	// Peak-picking overrides; NaN means "derive from sample rate".
	preMax  float64
	postMax float64
	preAvg  float64
	postAvg float64
	wait    float64
	delta   float64
}

func defaultConfig() config {
	nan := math.NaN()
	return config{
		fftSize:   defaultFFTSize,
		hopLength: defaultHopLength,
		melBands:  defaultMelBands,
		centering: true,
		aggregate: Mean,
		preMax:    nan,
		postMax:   nan,
		preAvg:    nan,
		postAvg:   nan,
		wait:      nan,
		delta:     nan,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// runFeature evaluates the configured feature extractor, defaulting to a
// mel power spectrogram.
func (c *config) runFeature(signal []float64, sampleRate float64) ([][]float64, error) {
	if c.feature != nil {
		return c.feature(signal, sampleRate, c.fftSize, c.hopLength)
	}

	melOpts := []mel.Option{
		mel.WithFFTSize(c.fftSize),
		mel.WithHopLength(c.hopLength),
		mel.WithBands(c.melBands),
	}
	if c.maxHz > 0 {
		melOpts = append(melOpts, mel.WithFrequencyRange(c.minHz, c.maxHz))
	}

	return mel.Spectrogram(signal, sampleRate, melOpts...)
}

// WithFFTSize sets the analysis frame size used for feature extraction and
// centering compensation.
func WithFFTSize(fftSize int) Option {
	return func(c *config) {
		if fftSize > 0 {
			c.fftSize = fftSize
		}
	}
}

// WithHopLength sets the hop length in samples.
func WithHopLength(hopLength int) Option {
	return func(c *config) {
		if hopLength > 0 {
			c.hopLength = hopLength
		}
	}
}

// WithMelBands sets the mel band count of the default feature.
func WithMelBands(bands int) Option {
	return func(c *config) {
		if bands > 0 {
			c.melBands = bands
		}
	}
}

// WithFrequencyRange restricts the default feature to [minHz, maxHz].
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(c *config) {
		if minHz >= 0 && maxHz > minHz {
			c.minHz = minHz
			c.maxHz = maxHz
		}
	}
}

// WithoutCentering disables the leading zero pad that compensates the
// windowing delay of the spectral transform.
func WithoutCentering() Option {
	return func(c *config) {
		c.centering = false
	}
}

// WithDetrend enables DC removal of the final envelope through a
// first-order high-pass filter.
func WithDetrend() Option {
	return func(c *config) {
		c.detrend = true
	}
}

// WithAggregate replaces the frequency aggregation function (default Mean).
func WithAggregate(fn AggregateFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.aggregate = fn
		}
	}
}

// WithFeature replaces the spectral feature extractor (default mel power
// spectrogram).
func WithFeature(fn FeatureFunc) Option {
	return func(c *config) {
		c.feature = fn
	}
}

// WithPreMax overrides the local-maximum lookback window in frames.
func WithPreMax(frames float64) Option {
	return func(c *config) {
		if frames >= 0 {
			c.preMax = frames
		}
	}
}

// WithPostMax overrides the local-maximum lookahead window in frames.
func WithPostMax(frames float64) Option {
	return func(c *config) {
		if frames >= 0 {
			c.postMax = frames
		}
	}
}

// WithPreAvg overrides the adaptive-mean lookback window in frames.
func WithPreAvg(frames float64) Option {
	return func(c *config) {
		if frames >= 0 {
			c.preAvg = frames
		}
	}
}

// WithPostAvg overrides the adaptive-mean lookahead window in frames.
func WithPostAvg(frames float64) Option {
	return func(c *config) {
		if frames >= 0 {
			c.postAvg = frames
		}
	}
}

// WithWait overrides the minimum spacing between onsets in frames.
func WithWait(frames float64) Option {
	return func(c *config) {
		if frames >= 0 {
			c.wait = frames
		}
	}
}

// WithDelta overrides the strength margin above the local mean.
func WithDelta(delta float64) Option {
	return func(c *config) {
		if delta >= 0 {
			c.delta = delta
		}
	}
}
