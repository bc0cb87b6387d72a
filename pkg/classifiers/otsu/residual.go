package otsu

import (
	"errors"
	"math"

	"github.com/oceansense/despike/pkg/classifiers"
	"github.com/oceansense/despike/pkg/classifiers/savgol"
)

// ResidualClassifier smooths the signal with a Savitzky-Golay filter and
// applies the Otsu threshold to the absolute residual. Spikes live in the
// high-frequency residual, so the threshold adapts to the noise floor
// rather than to the signal's slow variation.
type ResidualClassifier struct {
	window int
	degree int
	nbins  int
	oscale float64
}

// ResidualOption configures a ResidualClassifier.
type ResidualOption func(*ResidualClassifier)

// WithWindow sets the smoothing window size in samples. Must exceed 2.
func WithWindow(window int) ResidualOption {
	return func(c *ResidualClassifier) {
		c.window = window
	}
}

// WithDegree sets the smoothing polynomial degree.
func WithDegree(degree int) ResidualOption {
	return func(c *ResidualClassifier) {
		c.degree = degree
	}
}

// WithResidualBins sets the histogram bin count for the residual threshold.
func WithResidualBins(nbins int) ResidualOption {
	return func(c *ResidualClassifier) {
		c.nbins = nbins
	}
}

// WithResidualScale sets the threshold multiplier oscale.
func WithResidualScale(oscale float64) ResidualOption {
	return func(c *ResidualClassifier) {
		c.oscale = oscale
	}
}

// NewResidual creates a ResidualClassifier. Defaults: window 5, degree 2,
// 100 bins, oscale 1.
func NewResidual(opts ...ResidualOption) *ResidualClassifier {
	c := &ResidualClassifier{
		window: 5,
		degree: 2,
		nbins:  100,
		oscale: 1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify returns the 1-based indices of residual spikes. Runs of
// adjacent detections are always collapsed to their centroids: a single
// physical spike flags both of its edges in the residual.
func (c *ResidualClassifier) Classify(signal classifiers.Signal) (classifiers.SpikeSet, error) {
	if len(signal) == 0 {
		return nil, errors.New("empty signal")
	}

	smoother, err := savgol.New(c.window, c.degree)
	if err != nil {
		return nil, err
	}
	smoothed, err := smoother.Smooth(signal)
	if err != nil {
		return nil, err
	}

	residual := make([]float64, len(signal))
	for i := range signal {
		residual[i] = math.Abs(signal[i] - smoothed[i])
	}

	t := Threshold(residual, c.nbins) * c.oscale
	if t == 0 {
		return classifiers.SpikeSet{}, nil
	}

	var spikes classifiers.SpikeSet
	for i, r := range residual {
		if r > t {
			spikes = append(spikes, i+1)
		}
	}

	return classifiers.Decluster(spikes), nil
}
