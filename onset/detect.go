package onset

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-onset/dsp/peaks"
)

// Empirically tuned peak-picking defaults, expressed in seconds and
// converted to frame units per call.
const (
	defaultPreMaxSec  = 0.03
	defaultPostMaxSec = 0.00
	defaultPreAvgSec  = 0.10
	defaultPostAvgSec = 0.10
	defaultWaitSec    = 0.03
	defaultDelta      = 0.06
)

// DefaultPeakParams returns the peak-picking parameters used by Detect
// when the caller supplies none, scaled to frame units for the given
// sample rate and hop length.
func DefaultPeakParams(sampleRate float64, hopLength int) peaks.Params {
	framesPerSec := sampleRate / float64(hopLength)

	return peaks.Params{
		PreMax:  defaultPreMaxSec * framesPerSec,
		PostMax: defaultPostMaxSec * framesPerSec,
		PreAvg:  defaultPreAvgSec * framesPerSec,
		PostAvg: defaultPostAvgSec * framesPerSec,
		Wait:    defaultWaitSec * framesPerSec,
		Delta:   defaultDelta,
	}
}

// Detect locates onset events in a signal.
//
// The onset strength envelope is computed via [Strength] with the same
// options, normalized to [0, 1], and searched for peaks with parameters
// derived from the sample rate and hop length. The result is a strictly
// increasing sequence of envelope frame indices. An envelope without any
// detectable energy yields an empty result and no error.
func Detect(signal []float64, sampleRate float64, opts ...Option) ([]int, error) {
	if len(signal) == 0 {
		return nil, ErrNoEnvelope
	}

	envelope, err := Strength(signal, sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	return detectFromEnvelope(envelope, sampleRate, applyOptions(opts), false)
}

// DetectEnvelope locates onset events in a precomputed strength envelope.
//
// The envelope is copied before normalization; the caller's buffer is
// never mutated.
func DetectEnvelope(envelope []float64, sampleRate float64, opts ...Option) ([]int, error) {
	if len(envelope) == 0 {
		return nil, ErrNoEnvelope
	}

	return detectFromEnvelope(envelope, sampleRate, applyOptions(opts), true)
}

func detectFromEnvelope(envelope []float64, sampleRate float64, cfg config, copyInput bool) ([]int, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("onset: sample rate must be > 0: %f", sampleRate)
	}

	if allZero(envelope) {
		return []int{}, nil
	}

	if copyInput {
		envelope = append([]float64(nil), envelope...)
	}
	normalize(envelope)

	return peaks.Pick(envelope, resolvePeakParams(cfg, sampleRate))
}

// resolvePeakParams merges caller overrides over the derived defaults.
// An explicitly supplied parameter is never re-derived.
func resolvePeakParams(cfg config, sampleRate float64) peaks.Params {
	p := DefaultPeakParams(sampleRate, cfg.hopLength)

	if !math.IsNaN(cfg.preMax) {
		p.PreMax = cfg.preMax
	}
	if !math.IsNaN(cfg.postMax) {
		p.PostMax = cfg.postMax
	}
	if !math.IsNaN(cfg.preAvg) {
		p.PreAvg = cfg.preAvg
	}
	if !math.IsNaN(cfg.postAvg) {
		p.PostAvg = cfg.postAvg
	}
	if !math.IsNaN(cfg.wait) {
		p.Wait = cfg.wait
	}
	if !math.IsNaN(cfg.delta) {
		p.Delta = cfg.delta
	}

	return p
}

// normalize maps the envelope onto [0, 1] in place: subtract the minimum,
// then divide by the resulting maximum. A constant envelope maps to all
// zeros.
func normalize(envelope []float64) {
	lo := envelope[0]
	for _, v := range envelope {
		if v < lo {
			lo = v
		}
	}

	hi := 0.0
	for i := range envelope {
		envelope[i] -= lo
		if envelope[i] > hi {
			hi = envelope[i]
		}
	}

	if hi == 0 {
		return
	}

	for i := range envelope {
		envelope[i] /= hi
	}
}

func allZero(envelope []float64) bool {
	for _, v := range envelope {
		if v != 0 {
			return false
		}
	}
	return true
}
