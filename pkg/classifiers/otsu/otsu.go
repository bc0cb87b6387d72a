// Package otsu provides histogram-based spike thresholding.
//
// Otsu's method picks the histogram split that maximizes between-class
// variance, separating "noise" magnitudes from "signal" magnitudes without
// a hand-tuned cutoff. The package offers the bare threshold routine, a
// classifier applying it directly to a signal, and a classifier applying it
// to the residual of a polynomial smoothing pass.
package otsu

import (
	"errors"
	"math"

	"github.com/oceansense/despike/pkg/classifiers"
)

// Threshold computes the optimal bi-level threshold of the signal using an
// nbins-bin equal-width histogram. Degenerate inputs (constant signal, all
// mass on one side of every split) yield 0, the detect-nothing fallback.
func Threshold(signal classifiers.Signal, nbins int) float64 {
	if nbins < 2 {
		return 0
	}

	min, max := math.Inf(1), math.Inf(-1)
	total := 0
	for _, x := range signal {
		if math.IsNaN(x) {
			continue
		}
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
		total++
	}
	if total == 0 || min >= max {
		return 0
	}

	width := (max - min) / float64(nbins)
	prob := make([]float64, nbins)
	for _, x := range signal {
		if math.IsNaN(x) {
			continue
		}
		bin := int((x - min) / width)
		if bin >= nbins {
			bin = nbins - 1
		}
		prob[bin] += 1 / float64(total)
	}

	// Probability-weighted mean over all bins, used to derive the right
	// class mean from the running left-side sums.
	var meanAll float64
	for b, p := range prob {
		meanAll += p * binCenter(min, width, b)
	}

	var bestVar float64
	bestSplit := 0
	var p1, mean1 float64

	for i := 1; i < nbins; i++ {
		p1 += prob[i-1]
		mean1 += prob[i-1] * binCenter(min, width, i-1)

		if p1 == 0 {
			continue
		}
		p2 := 1 - p1
		if p2 <= 0 {
			continue
		}

		mu1 := mean1 / p1
		mu2 := (meanAll - mean1) / p2
		v := p1 * p2 * (mu1 - mu2) * (mu1 - mu2)
		if v > bestVar {
			bestVar = v
			bestSplit = i
		}
	}

	if bestVar <= 0 {
		return 0
	}
	return min + float64(bestSplit)*width
}

func binCenter(min, width float64, bin int) float64 {
	return min + (float64(bin)+0.5)*width
}

// Classifier flags samples whose magnitude exceeds the Otsu threshold of
// the signal, scaled down by oscale. The test is symmetric about zero;
// callers pre-center or difference the signal when a non-zero baseline
// test is wanted.
type Classifier struct {
	nbins      int
	oscale     float64
	centralize bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithBins sets the histogram bin count.
func WithBins(nbins int) Option {
	return func(c *Classifier) {
		c.nbins = nbins
	}
}

// WithScale sets the threshold divisor oscale.
func WithScale(oscale float64) Option {
	return func(c *Classifier) {
		c.oscale = oscale
	}
}

// WithCentralize collapses each run of adjacent detections to its centroid.
func WithCentralize(centralize bool) Option {
	return func(c *Classifier) {
		c.centralize = centralize
	}
}

// New creates a Classifier. Defaults: 100 bins, oscale 1, no
// centralization.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		nbins:  100,
		oscale: 1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify returns the 1-based indices of samples beyond the scaled
// threshold.
func (c *Classifier) Classify(signal classifiers.Signal) (classifiers.SpikeSet, error) {
	if len(signal) == 0 {
		return nil, errors.New("empty signal")
	}
	if c.oscale == 0 {
		return nil, errors.New("oscale must be nonzero")
	}

	t := math.Abs(Threshold(signal, c.nbins) / c.oscale)
	if t == 0 {
		// Degenerate histogram: detect nothing.
		return classifiers.SpikeSet{}, nil
	}

	var spikes classifiers.SpikeSet
	for i, x := range signal {
		if x > t || x < -t {
			spikes = append(spikes, i+1)
		}
	}

	if c.centralize {
		spikes = classifiers.Decluster(spikes)
	}
	return spikes, nil
}
