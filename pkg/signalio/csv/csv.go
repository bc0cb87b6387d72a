// Package csv reads a signal column, and optionally a burst-id column,
// from CSV files.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/oceansense/despike/pkg/classifiers"
)

// Reader extracts one signal column from a CSV file. Samples that fail to
// parse become NaN so the signal keeps its length; the NaN-tolerant
// classifiers skip them.
type Reader struct {
	file        *os.File
	reader      *csv.Reader
	hasHeader   bool
	column      int
	burstColumn int
	headers     []string
}

// Option configures a Reader.
type Option func(*Reader)

// WithHeader indicates the CSV has a header row.
func WithHeader(has bool) Option {
	return func(r *Reader) {
		r.hasHeader = has
	}
}

// WithColumn selects the zero-based signal column.
func WithColumn(col int) Option {
	return func(r *Reader) {
		r.column = col
	}
}

// WithBurstColumn selects a column of burst identifiers: consecutive rows
// with equal identifiers form one burst. Pass -1 (the default) for
// signals without burst structure.
func WithBurstColumn(col int) Option {
	return func(r *Reader) {
		r.burstColumn = col
	}
}

// NewReader creates a CSV signal reader.
func NewReader(filename string, opts ...Option) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		file:        file,
		reader:      csv.NewReader(file),
		hasHeader:   true,
		burstColumn: -1,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.hasHeader {
		headers, err := r.reader.Read()
		if err != nil {
			file.Close()
			return nil, err
		}
		r.headers = headers
	}

	return r, nil
}

// Headers returns the column headers, if the file has them.
func (r *Reader) Headers() []string {
	return r.headers
}

// Read returns the signal and, when a burst column is configured, the
// burst partition derived from it.
func (r *Reader) Read() (classifiers.Signal, classifiers.BurstPartition, error) {
	var signal classifiers.Signal
	var burstIDs []string

	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		if r.column >= len(record) {
			return nil, nil, fmt.Errorf("row %d has no column %d", len(signal)+1, r.column)
		}
		v, err := strconv.ParseFloat(record[r.column], 64)
		if err != nil {
			v = math.NaN()
		}
		signal = append(signal, v)

		if r.burstColumn >= 0 {
			if r.burstColumn >= len(record) {
				return nil, nil, fmt.Errorf("row %d has no burst column %d", len(signal), r.burstColumn)
			}
			burstIDs = append(burstIDs, record[r.burstColumn])
		}
	}

	if len(signal) == 0 {
		return nil, nil, errors.New("no samples in file")
	}
	if r.burstColumn < 0 {
		return signal, nil, nil
	}

	return signal, partitionFromIDs(burstIDs), nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// partitionFromIDs groups consecutive equal burst identifiers into ranges.
func partitionFromIDs(ids []string) classifiers.BurstPartition {
	var bursts classifiers.BurstPartition
	start := 1
	for i := 1; i <= len(ids); i++ {
		if i == len(ids) || ids[i] != ids[i-1] {
			bursts = append(bursts, classifiers.BurstRange{Start: start, End: i})
			start = i + 1
		}
	}
	return bursts
}
