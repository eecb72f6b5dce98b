// Package rank scores admitted sections against the persona's task and picks
// a small, document-diverse result set.
package rank

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/keywords"
	"github.com/dgallion1/docrank/internal/tfidf"
)

// Weights of the priority score. Lower scores are more relevant.
const (
	TitleKeywordWeight    = 100
	DocumentKeywordWeight = 10
	BoilerplatePenalty    = 20
	DocumentSimWeight     = 3
)

// DocumentText is the full text of one document, used for the document-level space.
type DocumentText struct {
	Title string
	Text  string
}

// Query synthesizes the text both vector spaces are compared against.
func Query(persona, job string) string {
	return fmt.Sprintf("%s planning: %s", persona, job)
}

// Scorer computes the priority score of a section.
type Scorer struct {
	keywords    keywords.Set
	boilerplate map[string]struct{}
}

// NewScorer builds a scorer over the run's focus keywords and the lexicon's
// boilerplate titles.
func NewScorer(kw keywords.Set, lex config.Lexicon) *Scorer {
	bp := make(map[string]struct{}, len(lex.BoilerplateTitles))
	for _, t := range lex.BoilerplateTitles {
		bp[strings.ToLower(t)] = struct{}{}
	}
	return &Scorer{keywords: kw, boilerplate: bp}
}

// Priority combines keyword hits, the boilerplate penalty and the two
// similarity scores. The i-th keyword is worth 100-i in the section title,
// or 10-i in the document title when the section title misses it.
func (s *Scorer) Priority(sec doctree.Section, docScore, secScore float64) float64 {
	title := strings.ToLower(sec.Title)
	doc := strings.ToLower(sec.Document)

	score := 0.0
	for i, kw := range s.keywords {
		switch {
		case strings.Contains(title, kw):
			score -= float64(TitleKeywordWeight - i)
		case strings.Contains(doc, kw):
			score -= float64(DocumentKeywordWeight - i)
		}
	}
	// exact title match, not substring
	if _, ok := s.boilerplate[title]; ok {
		score += BoilerplatePenalty
	}
	score -= docScore*DocumentSimWeight + secScore
	return score
}

// ScoreSections builds the document-level and section-level TF-IDF spaces
// for the run and scores every section. Output order matches input order.
func ScoreSections(s *Scorer, sections []doctree.Section, docs []DocumentText, query string) []doctree.ScoredSection {
	docCorpus := make([]string, len(docs))
	for i, d := range docs {
		docCorpus[i] = d.Text
	}
	docSims := tfidf.Similarities(docCorpus, query)
	docScore := make(map[string]float64, len(docs))
	for i, d := range docs {
		docScore[d.Title] = docSims[i]
	}

	secCorpus := make([]string, len(sections))
	for i, sec := range sections {
		secCorpus[i] = sec.Title + " " + sec.Text
	}
	secSims := tfidf.Similarities(secCorpus, query)

	scored := make([]doctree.ScoredSection, len(sections))
	for i, sec := range sections {
		scored[i] = doctree.ScoredSection{
			Section: sec,
			Score:   s.Priority(sec, docScore[sec.Document], secSims[i]),
		}
	}
	return scored
}
