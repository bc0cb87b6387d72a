package otsu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceansense/despike/pkg/classifiers"
)

// ramp builds a linear signal with a single spike added at the 1-based
// index. The smoother reproduces the linear trend exactly, so every
// nonzero residual traces back to the spike.
func ramp(n int, spikeAt int, spike float64) classifiers.Signal {
	signal := make(classifiers.Signal, n)
	for i := range signal {
		signal[i] = 0.1 * float64(i+1)
	}
	signal[spikeAt-1] += spike
	return signal
}

func TestResidualClassifySpikeOnTrend(t *testing.T) {
	signal := ramp(50, 25, 10)

	c := NewResidual(
		WithWindow(7),
		WithDegree(2),
		WithResidualBins(10),
		WithResidualScale(1),
	)
	spikes, err := c.Classify(signal)
	require.NoError(t, err)

	// The spike bleeds into neighboring fits, flagging a small run of
	// residuals that declusters back to the spike itself.
	assert.Equal(t, classifiers.SpikeSet{25}, spikes)
}

func TestResidualClassifyFlatSignal(t *testing.T) {
	// A flat signal smooths to itself: zero residual everywhere, a
	// degenerate histogram, hence no detections.
	signal := make(classifiers.Signal, 50)

	c := NewResidual(WithWindow(7), WithDegree(2), WithResidualBins(10))
	spikes, err := c.Classify(signal)
	require.NoError(t, err)
	assert.Empty(t, spikes)
}

func TestResidualClassifyAlwaysDeclusters(t *testing.T) {
	signal := ramp(50, 25, 10)

	c := NewResidual(WithWindow(7), WithDegree(2), WithResidualBins(10))
	spikes, err := c.Classify(signal)
	require.NoError(t, err)

	// Adjacent flagged residuals never survive as separate detections.
	for i := 1; i < len(spikes); i++ {
		assert.Greater(t, spikes[i]-spikes[i-1], 1)
	}
}

func TestResidualClassifyScaleMonotonicity(t *testing.T) {
	// oscale multiplies the residual threshold: raising it never flags
	// more.
	signal := ramp(50, 25, 10)
	signal[39] += 4

	prev := -1
	for _, oscale := range []float64{0.25, 0.5, 1, 2, 4} {
		c := NewResidual(
			WithWindow(7),
			WithDegree(2),
			WithResidualBins(10),
			WithResidualScale(oscale),
		)
		spikes, err := c.Classify(signal)
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, len(spikes), prev, "oscale %g", oscale)
		}
		prev = len(spikes)
	}
}

func TestResidualClassifyInvalidWindow(t *testing.T) {
	for _, window := range []int{0, 1, 2} {
		c := NewResidual(WithWindow(window))
		_, err := c.Classify(ramp(20, 10, 5))
		assert.Error(t, err, "window %d", window)
	}
}

func TestResidualClassifyEmptySignal(t *testing.T) {
	_, err := NewResidual().Classify(nil)
	assert.Error(t, err)
}

func TestResidualClassifyIsIdempotent(t *testing.T) {
	signal := ramp(50, 25, 10)
	c := NewResidual(WithWindow(7), WithDegree(2), WithResidualBins(10))

	first, err := c.Classify(signal)
	require.NoError(t, err)
	second, err := c.Classify(signal)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
