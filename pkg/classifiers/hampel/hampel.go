// Package hampel implements sliding-window median/MAD spike detection.
//
// For every sample the filter computes the median m and the median absolute
// deviation d of a window centered on it, and flags the sample when it sits
// more than madFactor*d from m. Near the signal boundaries the window is
// truncated rather than padded, so edge statistics use only real samples.
package hampel

import (
	"errors"
	"math"

	"github.com/oceansense/despike/pkg/classifiers"
	"github.com/oceansense/despike/pkg/classifiers/stats"
)

// Filter is a sample-granularity Hampel spike filter.
type Filter struct {
	halfWindow int
	madFactor  float64
	lowerMAD   float64
}

// Option configures a Filter.
type Option func(*Filter)

// WithHalfWindow sets the half-window width in samples. The full window
// around sample i spans [i-w, i+w], truncated at the signal boundaries.
// A width of 0 is a degenerate single-sample window that detects nothing.
func WithHalfWindow(w int) Option {
	return func(f *Filter) {
		f.halfWindow = w
	}
}

// WithMADFactor sets the deviation multiplier k: a sample is anomalous when
// it deviates from the window median by more than k times the window MAD.
func WithMADFactor(k float64) Option {
	return func(f *Filter) {
		f.madFactor = k
	}
}

// WithLowerMAD sets the lower MAD limit. Windows whose MAD does not exceed
// it flag nothing, suppressing false positives in near-constant regions
// where any deviation would otherwise dominate a vanishing MAD.
func WithLowerMAD(limit float64) Option {
	return func(f *Filter) {
		f.lowerMAD = limit
	}
}

// New creates a Filter. Defaults: half-window 3, MAD factor 10, lower MAD
// limit 0.
func New(opts ...Option) *Filter {
	f := &Filter{
		halfWindow: 3,
		madFactor:  10,
		lowerMAD:   0,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Classify returns the 1-based indices of detected spikes.
func (f *Filter) Classify(signal classifiers.Signal) (classifiers.SpikeSet, error) {
	spikes, _, err := f.Filter(signal)
	return spikes, err
}

// Filter returns the detected spike indices together with the filtered
// signal, in which each flagged sample is replaced by its window median.
func (f *Filter) Filter(signal classifiers.Signal) (classifiers.SpikeSet, classifiers.Signal, error) {
	if len(signal) == 0 {
		return nil, nil, errors.New("empty signal")
	}
	if f.halfWindow < 0 {
		return nil, nil, errors.New("negative half-window width")
	}

	n := len(signal)
	w := f.halfWindow

	filtered := make(classifiers.Signal, n)
	copy(filtered, signal)

	var spikes classifiers.SpikeSet
	scratch := make([]float64, 0, 2*w+1)
	devs := make([]float64, 0, 2*w+1)

	for i := 0; i < n; i++ {
		lo, hi := windowBounds(i, w, n)

		scratch = append(scratch[:0], signal[lo:hi+1]...)
		m := stats.MedianInPlace(scratch)

		devs = devs[:0]
		for _, x := range signal[lo : hi+1] {
			devs = append(devs, math.Abs(x-m))
		}
		d := stats.MedianInPlace(devs)

		if math.Abs(signal[i]-m) > f.madFactor*d && d > f.lowerMAD {
			spikes = append(spikes, i+1)
			filtered[i] = m
		}
	}

	return spikes, filtered, nil
}

// windowBounds returns the inclusive 0-based bounds of the window centered
// on sample i, truncated at the signal boundaries.
func windowBounds(i, w, n int) (lo, hi int) {
	lo = i - w
	if lo < 0 {
		lo = 0
	}
	hi = i + w
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}
