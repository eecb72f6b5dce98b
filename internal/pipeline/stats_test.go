package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractionStats_Percentiles(t *testing.T) {
	stats := NewExtractionStats(time.Hour)
	for i, ms := range []int{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms)*time.Millisecond, i+1)
	}

	snap := stats.Snapshot()
	assert.Equal(t, 5, snap.Documents)
	assert.Equal(t, 15, snap.Pages)
	assert.Equal(t, int64(100), snap.MinMs)
	assert.Equal(t, int64(500), snap.MaxMs)
	assert.Equal(t, 300.0, snap.AvgMs)
	assert.Equal(t, 300.0, snap.P50Ms)
	assert.InDelta(t, 480.0, snap.P95Ms, 1e-9)
	assert.InDelta(t, 496.0, snap.P99Ms, 1e-9)
}

func TestExtractionStats_PrunesOldSamples(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := NewExtractionStats(time.Minute)
	stats.now = func() time.Time { return now }

	stats.Record(100*time.Millisecond, 1)
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, stats.Snapshot().Documents)

	stats.Record(200*time.Millisecond, 3)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Documents)
	assert.Equal(t, int64(200), snap.MinMs)
	assert.Equal(t, int64(200), snap.MaxMs)
}

func TestExtractionStats_ClampsNegativeDuration(t *testing.T) {
	stats := NewExtractionStats(time.Hour)
	stats.Record(-time.Second, 0)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Documents)
	assert.Equal(t, int64(0), snap.MaxMs)
}

func TestExtractionStats_Empty(t *testing.T) {
	assert.Equal(t, StatsSnapshot{}, NewExtractionStats(0).Snapshot())
}
