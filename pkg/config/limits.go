// Package config types and resolves classifier configuration: per-parameter
// limits, the flat property-file source feeding them, and the registry that
// turns a named classifier family into a ready-to-call configuration.
package config

import (
	"fmt"
	"strconv"

	"github.com/oceansense/despike/pkg/classifiers/stats"
)

// Limit declares one configurable parameter: its name, help text, and the
// typed parsing/checking of raw property values. The concrete type of the
// limit fixes the runtime type of the parsed value: IntRange yields int,
// FloatRange float64, BoolFlag bool, EstimatorChoice the estimator's name.
type Limit interface {
	Name() string
	Help() string

	// Parse converts a raw property value to the limit's value type.
	Parse(raw string) (any, error)

	// Check reports whether a parsed value lies within the advisory
	// bounds. The registry never clamps; Check exists for upstream
	// configuration validation.
	Check(v any) error
}

// IntRange is an integer parameter with inclusive bounds.
type IntRange struct {
	Param    string
	Min, Max int
	Desc     string
}

func (l IntRange) Name() string { return l.Param }
func (l IntRange) Help() string {
	return fmt.Sprintf("%s (integer in [%d, %d])", l.Desc, l.Min, l.Max)
}

func (l IntRange) Parse(raw string) (any, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %q is not an integer", l.Param, raw)
	}
	return v, nil
}

func (l IntRange) Check(v any) error {
	i, ok := v.(int)
	if !ok {
		return fmt.Errorf("parameter %s: value %v is not an integer", l.Param, v)
	}
	if i < l.Min || i > l.Max {
		return fmt.Errorf("parameter %s: %d outside [%d, %d]", l.Param, i, l.Min, l.Max)
	}
	return nil
}

// FloatRange is a floating-point parameter with inclusive bounds.
type FloatRange struct {
	Param    string
	Min, Max float64
	Desc     string
}

func (l FloatRange) Name() string { return l.Param }
func (l FloatRange) Help() string {
	return fmt.Sprintf("%s (number in [%g, %g])", l.Desc, l.Min, l.Max)
}

func (l FloatRange) Parse(raw string) (any, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %q is not a number", l.Param, raw)
	}
	return v, nil
}

func (l FloatRange) Check(v any) error {
	f, ok := v.(float64)
	if !ok {
		return fmt.Errorf("parameter %s: value %v is not a number", l.Param, v)
	}
	if f < l.Min || f > l.Max {
		return fmt.Errorf("parameter %s: %g outside [%g, %g]", l.Param, f, l.Min, l.Max)
	}
	return nil
}

// BoolFlag is a true/false parameter.
type BoolFlag struct {
	Param string
	Desc  string
}

func (l BoolFlag) Name() string { return l.Param }
func (l BoolFlag) Help() string { return fmt.Sprintf("%s (true or false)", l.Desc) }

func (l BoolFlag) Parse(raw string) (any, error) {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %q is not a boolean", l.Param, raw)
	}
	return v, nil
}

func (l BoolFlag) Check(v any) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("parameter %s: value %v is not a boolean", l.Param, v)
	}
	return nil
}

// EstimatorChoice is a parameter drawn from a fixed set of estimator names.
type EstimatorChoice struct {
	Param   string
	Choices []string
	Desc    string
}

func (l EstimatorChoice) Name() string { return l.Param }
func (l EstimatorChoice) Help() string {
	return fmt.Sprintf("%s (one of %v)", l.Desc, l.Choices)
}

func (l EstimatorChoice) Parse(raw string) (any, error) {
	for _, c := range l.Choices {
		if raw == c {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("parameter %s: %q is not one of %v", l.Param, raw, l.Choices)
}

func (l EstimatorChoice) Check(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("parameter %s: value %v is not an estimator name", l.Param, v)
	}
	_, err := l.Parse(s)
	return err
}

// LimitsFor builds the per-family parameter tables for a signal of length
// n. Window bounds scale with the signal, so the table is computed per
// classification target rather than held globally.
func LimitsFor(n int) map[Family][]Limit {
	return map[Family][]Limit{
		FamilyHampel: {
			IntRange{Param: "half_window", Min: 0, Max: n / 2, Desc: "half-window width in samples"},
			FloatRange{Param: "mad_factor", Min: 0, Max: 1e6, Desc: "MAD deviation multiplier"},
			FloatRange{Param: "lower_mad_limit", Min: 0, Max: 1e6, Desc: "minimum window MAD for flagging"},
		},
		FamilyBurstHampel: {
			BoolFlag{Param: "use_burst_window", Desc: "window over bursts instead of samples"},
			IntRange{Param: "half_window", Min: 0, Max: n, Desc: "half-window width in bursts (or samples)"},
			FloatRange{Param: "mad_factor", Min: 0, Max: 1e6, Desc: "MAD deviation multiplier"},
			FloatRange{Param: "lower_mad_limit", Min: 0, Max: 1e6, Desc: "minimum window MAD for flagging"},
			BoolFlag{Param: "repeated_only", Desc: "keep only detections confirmed by multiple windows"},
		},
		FamilyOtsu: {
			IntRange{Param: "nbins", Min: 2, Max: 10000, Desc: "histogram bin count"},
			FloatRange{Param: "oscale", Min: 1e-6, Max: 1e6, Desc: "threshold divisor"},
			BoolFlag{Param: "centralize", Desc: "collapse adjacent detections to centroids"},
		},
		FamilyOtsuSavgol: {
			IntRange{Param: "window", Min: 3, Max: n, Desc: "smoothing window in samples"},
			IntRange{Param: "degree", Min: 1, Max: 12, Desc: "smoothing polynomial degree"},
			IntRange{Param: "nbins", Min: 2, Max: 10000, Desc: "histogram bin count"},
			FloatRange{Param: "oscale", Min: 1e-6, Max: 1e6, Desc: "threshold multiplier"},
		},
		FamilyRunningStats: {
			EstimatorChoice{Param: "scale", Choices: stats.ScaleNames(), Desc: "central-tendency estimator"},
			EstimatorChoice{Param: "spread", Choices: stats.SpreadNames(), Desc: "dispersion estimator"},
			FloatRange{Param: "factor", Min: 0, Max: 1e6, Desc: "dispersion multiplier"},
		},
	}
}
