package onset

import "sort"

// AggregateFunc reduces the per-band strengths of one frame to a scalar.
type AggregateFunc func(values []float64) float64

// Mean is the default frequency aggregation.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median aggregates by the middle value, trading sensitivity for
// robustness against narrowband spikes.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
