// Package runstats implements global scale/dispersion spike detection: one
// pass flagging every sample outside scale ± factor*spread, with the scale
// and spread statistics drawn from a closed estimator set.
package runstats

import (
	"errors"
	"math"

	"github.com/oceansense/despike/pkg/classifiers"
	"github.com/oceansense/despike/pkg/classifiers/stats"
)

// Classifier flags samples outside the global tolerance band.
type Classifier struct {
	scale  stats.ScaleEstimator
	spread stats.SpreadEstimator
	factor float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithScale selects the central-tendency estimator.
func WithScale(scale stats.ScaleEstimator) Option {
	return func(c *Classifier) {
		c.scale = scale
	}
}

// WithSpread selects the dispersion estimator.
func WithSpread(spread stats.SpreadEstimator) Option {
	return func(c *Classifier) {
		c.spread = spread
	}
}

// WithFactor sets the dispersion multiplier.
func WithFactor(factor float64) Option {
	return func(c *Classifier) {
		c.factor = factor
	}
}

// New creates a Classifier. Defaults: mean scale, standard-deviation
// spread, factor 2.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		scale:  stats.ScaleMean,
		spread: stats.SpreadStdDev,
		factor: 2,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify returns the 1-based indices of samples outside the tolerance
// band. NaN samples never flag.
func (c *Classifier) Classify(signal classifiers.Signal) (classifiers.SpikeSet, error) {
	if len(signal) == 0 {
		return nil, errors.New("empty signal")
	}

	scale := c.scale.Estimate(signal)
	spread := c.factor * c.spread.Estimate(signal)
	if math.IsNaN(scale) || math.IsNaN(spread) {
		return nil, errors.New("signal has too few finite samples")
	}

	var spikes classifiers.SpikeSet
	for i, x := range signal {
		if x > scale+spread || x < scale-spread {
			spikes = append(spikes, i+1)
		}
	}

	return spikes, nil
}
