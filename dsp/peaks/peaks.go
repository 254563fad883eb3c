// Package peaks locates peaks in a sequence using adaptive thresholds.
//
// A sample qualifies as a peak when it is the maximum of a sliding window
// around it, exceeds a sliding mean around it by a fixed margin, and is not
// too close to the previously accepted peak. Thresholding against a local
// mean rather than a global constant keeps detection stable when the
// baseline of the sequence drifts.
package peaks

import "fmt"

// Params controls the adaptive peak search.
//
// PreMax, PostMax, PreAvg, PostAvg and Wait are window extents in samples;
// fractional values are truncated. Delta is the margin a peak must rise
// above the local mean.
type Params struct {
	PreMax  float64
	PostMax float64
	PreAvg  float64
	PostAvg float64
	Delta   float64
	Wait    float64
}

func (p Params) validate() error {
	if p.PreMax < 0 || p.PostMax < 0 || p.PreAvg < 0 || p.PostAvg < 0 || p.Wait < 0 {
		return fmt.Errorf("peaks: window parameters must be >= 0: %+v", p)
	}
	if p.Delta < 0 {
		return fmt.Errorf("peaks: delta must be >= 0: %f", p.Delta)
	}
	return nil
}

// Pick returns the strictly increasing indices of peaks in x.
//
// Index i is a peak when x[i] equals the maximum of x over
// [i-PreMax, i+PostMax], x[i] is at least Delta above the mean of x over
// [i-PreAvg, i+PostAvg] (windows truncated at the sequence boundaries), and
// i exceeds the previously accepted peak by more than Wait samples.
func Pick(x []float64, p Params) ([]int, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	preMax := int(p.PreMax)
	postMax := int(p.PostMax)
	preAvg := int(p.PreAvg)
	postAvg := int(p.PostAvg)
	wait := int(p.Wait)

	var picked []int
	last := -wait - 1

	for i := range x {
		if i-last <= wait {
			continue
		}

		if !isWindowMax(x, i, preMax, postMax) {
			continue
		}

		if x[i] < windowMean(x, i, preAvg, postAvg)+p.Delta {
			continue
		}

		picked = append(picked, i)
		last = i
	}

	return picked, nil
}

func isWindowMax(x []float64, i, pre, post int) bool {
	lo := i - pre
	if lo < 0 {
		lo = 0
	}
	hi := i + post
	if hi > len(x)-1 {
		hi = len(x) - 1
	}

	for j := lo; j <= hi; j++ {
		if x[j] > x[i] {
			return false
		}
	}
	return true
}

func windowMean(x []float64, i, pre, post int) float64 {
	lo := i - pre
	if lo < 0 {
		lo = 0
	}
	hi := i + post
	if hi > len(x)-1 {
		hi = len(x) - 1
	}

	sum := 0.0
	for j := lo; j <= hi; j++ {
		sum += x[j]
	}
	return sum / float64(hi-lo+1)
}
