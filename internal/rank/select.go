package rank

import (
	"sort"

	"github.com/dgallion1/docrank/internal/doctree"
)

// DefaultMaxSections is the size of the published result set.
const DefaultMaxSections = 5

// Select picks at most limit sections in two greedy passes over the sections
// sorted by ascending score (ties keep input order). The first pass takes
// at most one section per document; the second fills any remaining slots.
// A (document, title) pair is never picked twice. Ranks are assigned 1..K
// in pick order.
func Select(scored []doctree.ScoredSection, limit int) []doctree.ScoredSection {
	if limit <= 0 {
		limit = DefaultMaxSections
	}
	sorted := make([]doctree.ScoredSection, len(scored))
	copy(sorted, scored)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})

	picked := make([]doctree.ScoredSection, 0, limit)
	seenKey := make(map[doctree.Key]struct{})
	seenDoc := make(map[string]struct{})

	pick := func(s doctree.ScoredSection) {
		seenKey[s.Key()] = struct{}{}
		seenDoc[s.Document] = struct{}{}
		picked = append(picked, s)
	}

	for _, s := range sorted {
		if len(picked) >= limit {
			break
		}
		if _, ok := seenKey[s.Key()]; ok {
			continue
		}
		if _, ok := seenDoc[s.Document]; ok {
			continue
		}
		pick(s)
	}

	for _, s := range sorted {
		if len(picked) >= limit {
			break
		}
		if _, ok := seenKey[s.Key()]; ok {
			continue
		}
		pick(s)
	}

	for i := range picked {
		picked[i].Rank = i + 1
	}
	return picked
}
