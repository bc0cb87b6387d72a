// Package stats provides the robust statistics primitives shared by the
// spike classifiers, plus the closed set of scale and spread estimators
// that running-stats classification may be configured with.
//
// The whole-signal estimators (Mean, Median, StdDev, the absolute
// deviations) ignore NaN samples, since instrument records routinely carry
// NaN fill values.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of the non-NaN samples, or NaN if there
// are none.
func Mean(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

// StdDev returns the sample standard deviation of the non-NaN samples.
func StdDev(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) < 2 {
		return math.NaN()
	}
	return stat.StdDev(v, nil)
}

// Median returns the median of the non-NaN samples, averaging the two
// central order statistics for even counts.
func Median(xs []float64) float64 {
	v := dropNaN(xs)
	return MedianSorted(sortInPlace(v))
}

// MeanAbsDev returns the mean absolute deviation about the mean.
func MeanAbsDev(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	m := stat.Mean(v, nil)
	var sum float64
	for _, x := range v {
		sum += math.Abs(x - m)
	}
	return sum / float64(len(v))
}

// MedianAbsDev returns the median absolute deviation about the median.
func MedianAbsDev(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	m := MedianSorted(sortInPlace(v))
	for i, x := range v {
		v[i] = math.Abs(x - m)
	}
	return MedianSorted(sortInPlace(v))
}

// MedianInPlace sorts xs and returns its median. It is the raw windowed
// form used by the Hampel filter: no copy, no NaN screening.
func MedianInPlace(xs []float64) float64 {
	return MedianSorted(sortInPlace(xs))
}

// MedianSorted returns the median of an already sorted slice.
func MedianSorted(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

func sortInPlace(xs []float64) []float64 {
	sort.Float64s(xs)
	return xs
}

func dropNaN(xs []float64) []float64 {
	v := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			v = append(v, x)
		}
	}
	return v
}
