package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{
			name: "odd count",
			xs:   []float64{3, 1, 2},
			want: 2,
		},
		{
			name: "even count averages central pair",
			xs:   []float64{4, 1, 3, 2},
			want: 2.5,
		},
		{
			name: "NaN samples are ignored",
			xs:   []float64{1, math.NaN(), 3, math.NaN(), 2},
			want: 2,
		},
		{
			name: "single sample",
			xs:   []float64{7},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Median(tt.xs), 1e-12)
		})
	}
}

func TestMedianAllNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Median([]float64{math.NaN(), math.NaN()})))
}

func TestMeanIgnoresNaN(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, math.NaN(), 3}), 1e-12)
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestStdDev(t *testing.T) {
	// Sample standard deviation of {2,4,4,4,5,5,7,9} is ~2.138.
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 2.138, StdDev(xs), 1e-3)

	assert.True(t, math.IsNaN(StdDev([]float64{1})))
	assert.InDelta(t, 2.138, StdDev(append(xs, math.NaN())), 1e-3)
}

func TestMeanAbsDev(t *testing.T) {
	// Mean 3, absolute deviations {2,1,0,1,2}, mean 1.2.
	assert.InDelta(t, 1.2, MeanAbsDev([]float64{1, 2, 3, 4, 5}), 1e-12)
}

func TestMedianAbsDev(t *testing.T) {
	// Median 2, absolute deviations {1,0,0,1,7}, median 1.
	assert.InDelta(t, 1.0, MedianAbsDev([]float64{1, 2, 2, 3, 9}), 1e-12)

	// Robust to the outlier the standard deviation is not.
	assert.Less(t, MedianAbsDev([]float64{1, 2, 2, 3, 1000}), 2.0)
}

func TestMedianInPlaceSorts(t *testing.T) {
	xs := []float64{3, 1, 2}
	m := MedianInPlace(xs)
	assert.Equal(t, 2.0, m)
	assert.Equal(t, []float64{1, 2, 3}, xs)
}
