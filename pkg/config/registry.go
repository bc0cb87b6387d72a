package config

import (
	"errors"
	"fmt"

	"github.com/oceansense/despike/pkg/classifiers"
	"github.com/oceansense/despike/pkg/classifiers/hampel"
	"github.com/oceansense/despike/pkg/classifiers/otsu"
	"github.com/oceansense/despike/pkg/classifiers/runstats"
	"github.com/oceansense/despike/pkg/classifiers/stats"
)

// Family identifies one of the classifier families the registry can
// resolve.
type Family string

const (
	FamilyHampel       Family = "hampel"
	FamilyBurstHampel  Family = "burst_hampel"
	FamilyOtsu         Family = "otsu"
	FamilyOtsuSavgol   Family = "otsu_savgol"
	FamilyRunningStats Family = "running_stats"
)

// ClassifierKey is the property naming the classifier family.
const ClassifierKey = "classifier"

var (
	ErrUnknownClassifier = errors.New("unknown classifier family")
	ErrMissingParameter  = errors.New("missing parameter")
)

// Families lists the resolvable families in display order.
func Families() []Family {
	return []Family{
		FamilyHampel,
		FamilyBurstHampel,
		FamilyOtsu,
		FamilyOtsuSavgol,
		FamilyRunningStats,
	}
}

// DefaultFamily returns the family used when a run does not name one:
// burst-aware Hampel for burst-structured data, plain Hampel otherwise.
func DefaultFamily(burst bool) Family {
	if burst {
		return FamilyBurstHampel
	}
	return FamilyHampel
}

// Config is a resolved, immutable classifier configuration: the family, its
// declared parameter names in order, the typed parameter values, and the
// bound classification call. It may be shared freely across concurrent
// classification calls.
type Config struct {
	family   Family
	names    []string
	values   []any
	classify func(classifiers.Signal, classifiers.BurstPartition) (classifiers.SpikeSet, error)
}

// Family returns the resolved classifier family.
func (c *Config) Family() Family { return c.family }

// ParamNames returns the declared parameter names, in resolution order.
func (c *Config) ParamNames() []string {
	return append([]string(nil), c.names...)
}

// Values returns the typed parameter values, aligned with ParamNames.
func (c *Config) Values() []any {
	return append([]any(nil), c.values...)
}

// Classify runs the configured classifier. Families without burst
// semantics ignore the partition; the burst Hampel family requires one.
func (c *Config) Classify(signal classifiers.Signal, bursts classifiers.BurstPartition) (classifiers.SpikeSet, error) {
	return c.classify(signal, bursts)
}

// Resolve builds a Config from a property source for a signal of length n.
// burst reports whether the target data carries a burst partition; the
// burst Hampel family refuses to resolve without one. Every declared
// parameter must be present and typed, and the source must not carry
// parameters the family does not declare. Values are not clamped to their
// limits; bounds are advisory (see Limit.Check).
func Resolve(src PropertySource, n int, burst bool) (*Config, error) {
	name, ok := src.Get(ClassifierKey)
	if !ok {
		name = string(DefaultFamily(burst))
	}
	family := Family(name)

	limits, ok := LimitsFor(n)[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClassifier, name)
	}
	if family == FamilyBurstHampel && !burst {
		return nil, fmt.Errorf("classifier %s requires burst-structured data", family)
	}

	if withNames, ok := src.(interface{ Names() []string }); ok {
		if err := checkArity(withNames.Names(), limits); err != nil {
			return nil, err
		}
	}

	paramNames := make([]string, len(limits))
	values := make([]any, len(limits))
	for i, limit := range limits {
		raw, ok := src.Get(limit.Name())
		if !ok {
			return nil, fmt.Errorf("%w: %s (%s)", ErrMissingParameter, limit.Name(), family)
		}
		v, err := limit.Parse(raw)
		if err != nil {
			return nil, err
		}
		paramNames[i] = limit.Name()
		values[i] = v
	}

	classify, err := bind(family, values)
	if err != nil {
		return nil, err
	}

	return &Config{
		family:   family,
		names:    paramNames,
		values:   values,
		classify: classify,
	}, nil
}

// checkArity rejects sources carrying parameters the family does not
// declare, before any value is parsed.
func checkArity(names []string, limits []Limit) error {
	declared := make(map[string]bool, len(limits)+1)
	declared[ClassifierKey] = true
	for _, l := range limits {
		declared[l.Name()] = true
	}
	for _, name := range names {
		if !declared[name] {
			return fmt.Errorf("unexpected parameter %q", name)
		}
	}
	return nil
}

// bind constructs the family's classifier from its ordered typed values.
func bind(family Family, values []any) (func(classifiers.Signal, classifiers.BurstPartition) (classifiers.SpikeSet, error), error) {
	switch family {
	case FamilyHampel:
		f := hampel.New(
			hampel.WithHalfWindow(values[0].(int)),
			hampel.WithMADFactor(values[1].(float64)),
			hampel.WithLowerMAD(values[2].(float64)),
		)
		return func(signal classifiers.Signal, _ classifiers.BurstPartition) (classifiers.SpikeSet, error) {
			return f.Classify(signal)
		}, nil

	case FamilyBurstHampel:
		f := hampel.NewBurst(
			hampel.WithBurstWindow(values[0].(bool)),
			hampel.WithBurstHalfWindow(values[1].(int)),
			hampel.WithBurstMADFactor(values[2].(float64)),
			hampel.WithBurstLowerMAD(values[3].(float64)),
			hampel.WithRepeatedOnly(values[4].(bool)),
		)
		return func(signal classifiers.Signal, bursts classifiers.BurstPartition) (classifiers.SpikeSet, error) {
			if bursts == nil {
				return nil, errors.New("burst hampel classifier called without a burst partition")
			}
			return f.ClassifyBursts(signal, bursts)
		}, nil

	case FamilyOtsu:
		c := otsu.New(
			otsu.WithBins(values[0].(int)),
			otsu.WithScale(values[1].(float64)),
			otsu.WithCentralize(values[2].(bool)),
		)
		return func(signal classifiers.Signal, _ classifiers.BurstPartition) (classifiers.SpikeSet, error) {
			return c.Classify(signal)
		}, nil

	case FamilyOtsuSavgol:
		c := otsu.NewResidual(
			otsu.WithWindow(values[0].(int)),
			otsu.WithDegree(values[1].(int)),
			otsu.WithResidualBins(values[2].(int)),
			otsu.WithResidualScale(values[3].(float64)),
		)
		return func(signal classifiers.Signal, _ classifiers.BurstPartition) (classifiers.SpikeSet, error) {
			return c.Classify(signal)
		}, nil

	case FamilyRunningStats:
		scale, err := stats.ParseScale(values[0].(string))
		if err != nil {
			return nil, err
		}
		spread, err := stats.ParseSpread(values[1].(string))
		if err != nil {
			return nil, err
		}
		c := runstats.New(
			runstats.WithScale(scale),
			runstats.WithSpread(spread),
			runstats.WithFactor(values[2].(float64)),
		)
		return func(signal classifiers.Signal, _ classifiers.BurstPartition) (classifiers.SpikeSet, error) {
			return c.Classify(signal)
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownClassifier, family)
}
