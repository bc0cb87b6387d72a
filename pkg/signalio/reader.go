// Package signalio provides signal ingestion for the spike classifiers.
package signalio

import "github.com/oceansense/despike/pkg/classifiers"

// Source reads one signal, optionally with its burst structure.
type Source interface {
	// Read returns the complete signal and its burst partition. The
	// partition is nil when the source carries no burst structure.
	Read() (classifiers.Signal, classifiers.BurstPartition, error)

	// Close releases resources.
	Close() error
}
