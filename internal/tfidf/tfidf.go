// Package tfidf builds a corpus-global TF-IDF vector space and measures
// cosine similarity against a query.
package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned by Fit when no token survives stopword removal.
var ErrEmptyVocabulary = errors.New("tfidf: empty vocabulary")

// ErrNotFitted is returned by Transform before Fit succeeded.
var ErrNotFitted = errors.New("tfidf: vectorizer not fitted")

// Tokens are runs of two or more letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vector is a sparse, L2-normalized TF-IDF vector keyed by vocabulary index.
type Vector map[int]float64

// Dot returns the dot product of two vectors; for normalized vectors this is
// their cosine similarity.
func (v Vector) Dot(o Vector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	sum := 0.0
	for i, x := range v {
		sum += x * o[i]
	}
	return sum
}

// Vectorizer learns a vocabulary and smoothed IDF weights from a corpus.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
	stopwords  map[string]struct{}
	fitted     bool
}

// NewVectorizer creates an unfitted vectorizer using the English stopword list.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{stopwords: englishStopwords}
}

// Fit builds the vocabulary and IDF values from corpus.
func (v *Vectorizer) Fit(corpus []string) error {
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return ErrEmptyVocabulary
	}

	// Stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.fitted = true
	return nil
}

// Vocabulary returns the number of distinct terms learned by Fit.
func (v *Vectorizer) Vocabulary() int { return len(v.vocabulary) }

// Transform computes the normalized TF-IDF vector of text. Raw term counts
// are used as term frequency; unknown terms are ignored.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.fitted {
		return nil, ErrNotFitted
	}
	vec := make(Vector)
	for _, tok := range v.tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			vec[idx]++
		}
	}
	norm := 0.0
	for idx, count := range vec {
		w := count * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec, nil
}

func (v *Vectorizer) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Similarities fits a space over corpus plus query and returns the similarity
// of every corpus entry to the query, in corpus order. An empty vocabulary
// yields all zeros.
func Similarities(corpus []string, query string) []float64 {
	scores := make([]float64, len(corpus))
	v := NewVectorizer()
	fitOn := make([]string, 0, len(corpus)+1)
	fitOn = append(fitOn, corpus...)
	fitOn = append(fitOn, query)
	if err := v.Fit(fitOn); err != nil {
		return scores
	}
	q, _ := v.Transform(query)
	for i, text := range corpus {
		vec, _ := v.Transform(text)
		scores[i] = vec.Dot(q)
	}
	return scores
}
