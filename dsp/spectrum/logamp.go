package spectrum

import "math"

const (
	defaultLogFloor = 1e-10
	defaultLogRef   = 1.0
	defaultLogTopDB = 80.0
)

// LogOption configures logarithmic amplitude scaling.
type LogOption func(*logConfig)

type logConfig struct {
	ref    float64
	floor  float64
	topDB  float64
	noClip bool
}

func defaultLogConfig() logConfig {
	return logConfig{
		ref:   defaultLogRef,
		floor: defaultLogFloor,
		topDB: defaultLogTopDB,
	}
}

// WithReference sets the reference power for the 0 dB point.
func WithReference(ref float64) LogOption {
	return func(c *logConfig) {
		if ref > 0 {
			c.ref = ref
		}
	}
}

// WithFloor sets the minimum power clamped before taking the logarithm.
func WithFloor(floor float64) LogOption {
	return func(c *logConfig) {
		if floor > 0 {
			c.floor = floor
		}
	}
}

// WithTopDB sets the dynamic range below the peak kept after scaling.
func WithTopDB(topDB float64) LogOption {
	return func(c *logConfig) {
		if topDB > 0 {
			c.topDB = topDB
		}
	}
}

// WithoutClip disables dynamic-range clipping below the peak.
func WithoutClip() LogOption {
	return func(c *logConfig) {
		c.noClip = true
	}
}

// LogAmplitude converts power values to decibels relative to a reference.
//
// Values are floored before the logarithm to avoid -Inf, and by default the
// result is clipped to 80 dB below its peak.
func LogAmplitude(values []float64, opts ...LogOption) []float64 {
	if len(values) == 0 {
		return nil
	}

	cfg := applyLogOptions(opts)

	out := make([]float64, len(values))
	refDB := 10 * math.Log10(math.Max(cfg.floor, cfg.ref))

	peak := math.Inf(-1)
	for i, v := range values {
		out[i] = 10*math.Log10(math.Max(cfg.floor, math.Abs(v))) - refDB
		if out[i] > peak {
			peak = out[i]
		}
	}

	if !cfg.noClip {
		clipBelowPeak(out, peak, cfg.topDB)
	}

	return out
}

// LogAmplitudeMatrix converts a power matrix to decibels.
//
// The dynamic-range clip is applied against the global peak of the matrix,
// not per row.
func LogAmplitudeMatrix(s [][]float64, opts ...LogOption) [][]float64 {
	if len(s) == 0 {
		return nil
	}

	cfg := applyLogOptions(opts)

	out := make([][]float64, len(s))
	refDB := 10 * math.Log10(math.Max(cfg.floor, cfg.ref))

	peak := math.Inf(-1)
	for r, row := range s {
		out[r] = make([]float64, len(row))
		for i, v := range row {
			out[r][i] = 10*math.Log10(math.Max(cfg.floor, math.Abs(v))) - refDB
			if out[r][i] > peak {
				peak = out[r][i]
			}
		}
	}

	if !cfg.noClip {
		for _, row := range out {
			clipBelowPeak(row, peak, cfg.topDB)
		}
	}

	return out
}

func applyLogOptions(opts []LogOption) logConfig {
	cfg := defaultLogConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func clipBelowPeak(values []float64, peak, topDB float64) {
	lo := peak - topDB
	for i, v := range values {
		if v < lo {
			values[i] = lo
		}
	}
}
