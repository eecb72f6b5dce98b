package pipeline

import (
	"slices"
	"sync"
	"time"
)

type extractionSample struct {
	at       time.Time
	duration time.Duration
	pages    int
}

// StatsSnapshot aggregates recent document extractions.
type StatsSnapshot struct {
	Documents int     `json:"documents"`
	Pages     int     `json:"pages"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P95Ms     float64 `json:"p95_ms"`
	P99Ms     float64 `json:"p99_ms"`
}

// ExtractionStats keeps per-document extraction latency over a rolling window.
// It is safe for concurrent use by the document workers.
type ExtractionStats struct {
	mu      sync.Mutex
	samples []extractionSample
	window  time.Duration
	now     func() time.Time
}

// NewExtractionStats returns stats that forget samples older than window.
func NewExtractionStats(window time.Duration) *ExtractionStats {
	if window <= 0 {
		window = time.Hour
	}
	return &ExtractionStats{
		samples: make([]extractionSample, 0, 64),
		window:  window,
		now:     time.Now,
	}
}

// Record adds one extracted document.
func (s *ExtractionStats) Record(d time.Duration, pages int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, extractionSample{at: now, duration: max(d, 0), pages: pages})
}

// Snapshot aggregates the samples still inside the window.
func (s *ExtractionStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	ms := make([]int64, len(s.samples))
	var sum int64
	pages := 0
	for i, sm := range s.samples {
		ms[i] = sm.duration.Milliseconds()
		sum += ms[i]
		pages += sm.pages
	}
	slices.Sort(ms)

	return StatsSnapshot{
		Documents: len(ms),
		Pages:     pages,
		MinMs:     ms[0],
		MaxMs:     ms[len(ms)-1],
		AvgMs:     float64(sum) / float64(len(ms)),
		P50Ms:     percentile(ms, 50),
		P95Ms:     percentile(ms, 95),
		P99Ms:     percentile(ms, 99),
	}
}

func (s *ExtractionStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm extractionSample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	idx := float64(len(sorted)-1) * pct / 100
	lo := int(idx)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	w := idx - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[lo+1])-float64(sorted[lo]))*w
}
