package stats

import "fmt"

// ScaleEstimator selects the central-tendency statistic for global
// classification. The set is closed: configuration resolves a name to one
// of these constants, never to an arbitrary function.
type ScaleEstimator int

const (
	ScaleMean ScaleEstimator = iota
	ScaleMedian
)

// SpreadEstimator selects the dispersion statistic.
type SpreadEstimator int

const (
	SpreadStdDev SpreadEstimator = iota
	SpreadMeanAbsDev
	SpreadMedianAbsDev
)

// ParseScale resolves a configured estimator name.
func ParseScale(name string) (ScaleEstimator, error) {
	switch name {
	case "mean":
		return ScaleMean, nil
	case "median":
		return ScaleMedian, nil
	}
	return 0, fmt.Errorf("unknown scale estimator %q", name)
}

// ParseSpread resolves a configured estimator name.
func ParseSpread(name string) (SpreadEstimator, error) {
	switch name {
	case "stddev":
		return SpreadStdDev, nil
	case "mean_abs_dev":
		return SpreadMeanAbsDev, nil
	case "median_abs_dev":
		return SpreadMedianAbsDev, nil
	}
	return 0, fmt.Errorf("unknown spread estimator %q", name)
}

func (s ScaleEstimator) String() string {
	switch s {
	case ScaleMean:
		return "mean"
	case ScaleMedian:
		return "median"
	}
	return fmt.Sprintf("ScaleEstimator(%d)", int(s))
}

func (s SpreadEstimator) String() string {
	switch s {
	case SpreadStdDev:
		return "stddev"
	case SpreadMeanAbsDev:
		return "mean_abs_dev"
	case SpreadMedianAbsDev:
		return "median_abs_dev"
	}
	return fmt.Sprintf("SpreadEstimator(%d)", int(s))
}

// Estimate applies the selected scale statistic.
func (s ScaleEstimator) Estimate(xs []float64) float64 {
	if s == ScaleMedian {
		return Median(xs)
	}
	return Mean(xs)
}

// Estimate applies the selected spread statistic.
func (s SpreadEstimator) Estimate(xs []float64) float64 {
	switch s {
	case SpreadMeanAbsDev:
		return MeanAbsDev(xs)
	case SpreadMedianAbsDev:
		return MedianAbsDev(xs)
	}
	return StdDev(xs)
}

// ScaleNames lists the admissible scale estimator names, in display order.
func ScaleNames() []string { return []string{"mean", "median"} }

// SpreadNames lists the admissible spread estimator names.
func SpreadNames() []string { return []string{"stddev", "mean_abs_dev", "median_abs_dev"} }
