package pcap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oceansense/despike/pkg/classifiers"
)

func TestPartitionFromGaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	tests := []struct {
		name  string
		times []time.Time
		gap   time.Duration
		want  classifiers.BurstPartition
	}{
		{
			name:  "single packet",
			times: []time.Time{at(0)},
			gap:   time.Second,
			want:  classifiers.BurstPartition{{1, 1}},
		},
		{
			name:  "no gaps form one burst",
			times: []time.Time{at(0), at(10), at(20), at(30)},
			gap:   time.Second,
			want:  classifiers.BurstPartition{{1, 4}},
		},
		{
			name:  "gaps split bursts",
			times: []time.Time{at(0), at(10), at(2000), at(2010), at(2020), at(9000)},
			gap:   time.Second,
			want:  classifiers.BurstPartition{{1, 2}, {3, 5}, {6, 6}},
		},
		{
			name:  "gap exactly at threshold splits",
			times: []time.Time{at(0), at(1000)},
			gap:   time.Second,
			want:  classifiers.BurstPartition{{1, 1}, {2, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := partitionFromGaps(tt.times, tt.gap)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate(len(tt.times)))
		})
	}
}

func TestNewFileReaderMissingFile(t *testing.T) {
	_, err := NewFileReader("absent.pcap")
	assert.Error(t, err)
}
