// Package keywords derives the focus terms that bias section scoring toward
// what the persona is trying to do.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/config"
)

const minWordLen = 4 // exclusive

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Extractor maps persona and job text onto focus keywords.
type Extractor struct {
	phrases []config.PhraseKeywords
}

// NewExtractor builds an extractor over the lexicon's phrase table.
func NewExtractor(lex config.Lexicon) *Extractor {
	return &Extractor{phrases: lex.JobKeywords}
}

// Set is a deduplicated, sorted list of lowercase focus terms. Its order is
// the iteration order the scorer uses for positional weights.
type Set []string

// Contains reports whether kw is in the set.
func (s Set) Contains(kw string) bool {
	i := sort.SearchStrings(s, kw)
	return i < len(s) && s[i] == kw
}

// Extract returns the focus keywords for persona and job. Phrase-table hits
// contribute their keyword lists; every word longer than four characters
// contributes itself.
func (e *Extractor) Extract(persona, job string) Set {
	base := strings.ToLower(persona + " " + job)

	seen := make(map[string]struct{})
	for _, p := range e.phrases {
		if p.Phrase == "" || !strings.Contains(base, strings.ToLower(p.Phrase)) {
			continue
		}
		for _, kw := range p.Keywords {
			seen[strings.ToLower(kw)] = struct{}{}
		}
	}
	for _, w := range wordPattern.FindAllString(base, -1) {
		if utf8.RuneCountInString(w) > minWordLen {
			seen[w] = struct{}{}
		}
	}

	set := make(Set, 0, len(seen))
	for kw := range seen {
		set = append(set, kw)
	}
	sort.Strings(set)
	return set
}
