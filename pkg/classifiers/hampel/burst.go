package hampel

import (
	"sort"

	"github.com/oceansense/despike/pkg/classifiers"
)

// BurstFilter applies Hampel classification to burst-structured signals.
//
// Instruments that sample in bursts produce legitimate burst-to-burst level
// shifts that a sample-granularity window misreads. In burst mode the
// half-window counts bursts: each scan window spans 2w+1 whole bursts and
// the Hampel statistic is computed over all of their samples, so an entire
// aberrant burst stands out against its neighbors.
type BurstFilter struct {
	useBurstWindow bool
	halfWindow     int
	madFactor      float64
	lowerMAD       float64
	repeatedOnly   bool
	progress       classifiers.ProgressFunc
}

// BurstOption configures a BurstFilter.
type BurstOption func(*BurstFilter)

// WithBurstWindow selects burst-granularity windows. When disabled the
// filter delegates to the sample-granularity Filter.
func WithBurstWindow(use bool) BurstOption {
	return func(f *BurstFilter) {
		f.useBurstWindow = use
	}
}

// WithBurstHalfWindow sets the half-window width: bursts in burst mode,
// samples otherwise.
func WithBurstHalfWindow(w int) BurstOption {
	return func(f *BurstFilter) {
		f.halfWindow = w
	}
}

// WithBurstMADFactor sets the deviation multiplier k.
func WithBurstMADFactor(k float64) BurstOption {
	return func(f *BurstFilter) {
		f.madFactor = k
	}
}

// WithBurstLowerMAD sets the lower MAD limit.
func WithBurstLowerMAD(limit float64) BurstOption {
	return func(f *BurstFilter) {
		f.lowerMAD = limit
	}
}

// WithRepeatedOnly keeps only indices flagged by more than one scan window.
// Overlapping windows see each interior sample up to 2w+1 times; a
// detection confirmed by a single window only is discarded as a likely
// false positive.
func WithRepeatedOnly(repeated bool) BurstOption {
	return func(f *BurstFilter) {
		f.repeatedOnly = repeated
	}
}

// WithProgress installs a callback invoked after each scan window with
// (window, total). Returning false cancels the scan.
func WithProgress(fn classifiers.ProgressFunc) BurstOption {
	return func(f *BurstFilter) {
		f.progress = fn
	}
}

// NewBurst creates a BurstFilter. Defaults: burst windows enabled,
// half-window 3, MAD factor 10, lower MAD limit 0, repeated-only off.
func NewBurst(opts ...BurstOption) *BurstFilter {
	f := &BurstFilter{
		useBurstWindow: true,
		halfWindow:     3,
		madFactor:      10,
		lowerMAD:       0,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// ClassifyBursts returns the 1-based spike indices of the signal given its
// burst partition. The partition is validated up front; a malformed one is
// a configuration error, not a detection result.
func (f *BurstFilter) ClassifyBursts(signal classifiers.Signal, bursts classifiers.BurstPartition) (classifiers.SpikeSet, error) {
	if err := bursts.Validate(len(signal)); err != nil {
		return nil, err
	}

	if !f.useBurstWindow {
		w := f.halfWindow
		if w == 0 {
			w = 1
		}
		inner := New(
			WithHalfWindow(w),
			WithMADFactor(f.madFactor),
			WithLowerMAD(f.lowerMAD),
		)
		return inner.Classify(signal)
	}

	n := len(signal)
	span := 2*f.halfWindow + 1

	// Too few bursts for a sliding scan: one global pass whose window
	// covers the whole signal.
	if len(bursts) <= span {
		inner := New(
			WithHalfWindow((n+1)/2+1),
			WithMADFactor(f.madFactor),
			WithLowerMAD(f.lowerMAD),
		)
		return inner.Classify(signal)
	}

	total := len(bursts) - 2*f.halfWindow
	hits := make(map[int]int)

	for s := 1; s <= total; s++ {
		first := bursts[s-1]
		last := bursts[s+2*f.halfWindow-1]
		segment := signal[first.Start-1 : last.End]

		inner := New(
			WithHalfWindow((len(segment)+1)/2+1),
			WithMADFactor(f.madFactor),
			WithLowerMAD(f.lowerMAD),
		)
		local, err := inner.Classify(segment)
		if err != nil {
			return nil, err
		}
		for _, idx := range local {
			hits[first.Start+idx-1]++
		}

		if f.progress != nil && !f.progress(s, total) {
			return nil, classifiers.ErrCanceled
		}
	}

	spikes := make(classifiers.SpikeSet, 0, len(hits))
	for idx, count := range hits {
		if f.repeatedOnly && count < 2 {
			continue
		}
		spikes = append(spikes, idx)
	}
	sort.Ints(spikes)

	return spikes, nil
}
