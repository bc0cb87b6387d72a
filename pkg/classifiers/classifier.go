// Package classifiers defines the common types and contracts shared by all
// spike classification algorithms.
//
// A classifier takes an immutable Signal and reports a SpikeSet: the sorted,
// duplicate-free 1-based indices of samples judged anomalous. Indices are
// 1-based end to end because the downstream QC flag tables count samples
// from 1; converting at the boundary of every classifier would invite
// off-by-one bugs.
package classifiers

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned when a progress callback stops a long-running scan.
var ErrCanceled = errors.New("classification canceled")

// Signal is an ordered sequence of samples. Classifiers never mutate it.
type Signal []float64

// SpikeSet holds the detected anomaly indices, strictly increasing, 1-based.
type SpikeSet []int

// Classifier is the common interface for whole-signal spike detection.
type Classifier interface {
	// Classify returns the indices of samples judged anomalous.
	Classify(signal Signal) (SpikeSet, error)
}

// BurstClassifier detects spikes in signals with burst structure.
type BurstClassifier interface {
	// ClassifyBursts returns anomalous indices given the signal's
	// partition into contiguous sampling bursts.
	ClassifyBursts(signal Signal, bursts BurstPartition) (SpikeSet, error)
}

// ProgressFunc receives (window, total) after each window of a long scan.
// Returning false stops the scan; the classifier then returns ErrCanceled.
type ProgressFunc func(window, total int) bool

// BurstRange is one contiguous sampling episode, inclusive 1-based bounds.
type BurstRange struct {
	Start int
	End   int
}

// Len returns the number of samples in the burst.
func (b BurstRange) Len() int { return b.End - b.Start + 1 }

// BurstPartition divides a signal of length n into contiguous, disjoint
// bursts covering 1..n in order.
type BurstPartition []BurstRange

// Validate checks that the partition covers 1..n contiguously and in order.
func (p BurstPartition) Validate(n int) error {
	if len(p) == 0 {
		return errors.New("empty burst partition")
	}
	if p[0].Start != 1 {
		return fmt.Errorf("burst partition starts at %d, want 1", p[0].Start)
	}
	for i, b := range p {
		if b.Start > b.End {
			return fmt.Errorf("burst %d has start %d after end %d", i+1, b.Start, b.End)
		}
		if i > 0 && b.Start != p[i-1].End+1 {
			return fmt.Errorf("burst %d starts at %d, want %d (contiguous with previous)",
				i+1, b.Start, p[i-1].End+1)
		}
	}
	if last := p[len(p)-1].End; last != n {
		return fmt.Errorf("burst partition ends at %d, want signal length %d", last, n)
	}
	return nil
}
