// Package pcap turns packet captures into diagnostic signals: the packet
// length or inter-arrival series of a capture, with burst structure derived
// from gaps between packets. Spikes in these series surface capture stalls
// and oversized frames the same way sensor glitches surface in instrument
// records.
package pcap

import (
	"errors"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/oceansense/despike/pkg/classifiers"
)

// Series selects which per-packet quantity forms the signal.
type Series int

const (
	// SeriesLength uses the raw packet length in bytes.
	SeriesLength Series = iota
	// SeriesInterval uses the inter-arrival time in seconds; the first
	// packet contributes 0.
	SeriesInterval
)

// Reader reads a signal from a capture file.
type Reader struct {
	handle   *pcap.Handle
	series   Series
	burstGap time.Duration
}

// Option configures a Reader.
type Option func(*Reader)

// WithSeries selects the signal series.
func WithSeries(s Series) Option {
	return func(r *Reader) {
		r.series = s
	}
}

// WithBurstGap derives a burst partition from packet timing: an
// inter-arrival gap of at least d starts a new burst. Zero (the default)
// disables burst structure.
func WithBurstGap(d time.Duration) Option {
	return func(r *Reader) {
		r.burstGap = d
	}
}

// NewFileReader creates a reader for a capture file.
func NewFileReader(filename string, opts ...Option) (*Reader, error) {
	handle, err := pcap.OpenOffline(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{handle: handle}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Read returns the configured series and, when a burst gap is set, the
// partition implied by packet timing.
func (r *Reader) Read() (classifiers.Signal, classifiers.BurstPartition, error) {
	if r.handle == nil {
		return nil, nil, errors.New("reader not initialized")
	}

	var signal classifiers.Signal
	var times []time.Time

	source := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	var last time.Time
	for packet := range source.Packets() {
		ts := packet.Metadata().Timestamp

		switch r.series {
		case SeriesInterval:
			var dt float64
			if !last.IsZero() {
				dt = ts.Sub(last).Seconds()
			}
			signal = append(signal, dt)
		default:
			signal = append(signal, float64(len(packet.Data())))
		}

		last = ts
		times = append(times, ts)
	}

	if len(signal) == 0 {
		return nil, nil, errors.New("no packets in capture")
	}
	if r.burstGap <= 0 {
		return signal, nil, nil
	}

	return signal, partitionFromGaps(times, r.burstGap), nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.handle != nil {
		r.handle.Close()
	}
	return nil
}

// partitionFromGaps starts a new burst wherever consecutive timestamps are
// at least gap apart.
func partitionFromGaps(times []time.Time, gap time.Duration) classifiers.BurstPartition {
	var bursts classifiers.BurstPartition
	start := 1
	for i := 1; i <= len(times); i++ {
		if i == len(times) || times[i].Sub(times[i-1]) >= gap {
			bursts = append(bursts, classifiers.BurstRange{Start: start, End: i})
			start = i + 1
		}
	}
	return bursts
}
