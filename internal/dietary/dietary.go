// Package dietary derives content-exclusion rules from a job description and
// applies them to recipe-style sections. It is a lexical heuristic, not an
// allergen classifier.
package dietary

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/textnorm"
)

// Profile is the set of exclusions requested by a job description.
type Profile struct {
	Vegetarian    bool
	Vegan         bool
	GlutenFree    bool
	Exclude       []string // meat (and, for vegan, animal-product) terms
	ExcludeGluten []string
}

// Active reports whether any dietary restriction applies.
func (p Profile) Active() bool {
	return p.Vegetarian || p.Vegan || p.GlutenFree
}

// Filter admits or rejects sections against a Profile.
type Filter struct {
	profile Profile
	exclude []*regexp.Regexp
	gluten  []*regexp.Regexp
	markers []string
}

// NewProfile computes the dietary profile for a job description.
func NewProfile(job string, lex config.Lexicon) Profile {
	j := strings.ToLower(job)
	var p Profile
	if strings.Contains(j, "vegetarian") {
		p.Vegetarian = true
		p.Exclude = dedupe(lex.MeatWords)
	}
	if strings.Contains(j, "vegan") {
		p.Vegan = true
		p.Exclude = dedupe(append(append([]string{}, lex.MeatWords...), lex.AnimalProducts...))
	}
	if strings.Contains(j, "gluten") && strings.Contains(j, "free") {
		p.GlutenFree = true
		p.ExcludeGluten = dedupe(lex.GlutenWords)
	}
	return p
}

// NewFilter compiles the whole-word patterns for a profile.
func NewFilter(p Profile, lex config.Lexicon) *Filter {
	f := &Filter{profile: p, markers: lex.InstructionMarkers}
	for _, term := range p.Exclude {
		f.exclude = append(f.exclude, termPattern(term))
	}
	if p.GlutenFree {
		for _, term := range p.ExcludeGluten {
			f.gluten = append(f.gluten, termPattern(term))
		}
	}
	return f
}

// Admit reports whether a section survives every applicable exclusion.
func (f *Filter) Admit(s doctree.Section) bool {
	if !f.profile.Active() {
		return true
	}
	text := textnorm.Clean(strings.ToLower(s.Title + "\n" + s.Text))
	ingredients := ExtractIngredients(s.Text, f.markers)

	for _, groups := range [][]*regexp.Regexp{f.exclude, f.gluten} {
		for _, re := range groups {
			if matchesAny(re, ingredients) || re.MatchString(text) {
				return false
			}
		}
	}
	return true
}

// ExtractIngredients collects candidate ingredient tokens from the lines that
// follow an "ingredient" line, stopping at a blank line, an overlong line or
// an instruction marker.
func ExtractIngredients(text string, markers []string) []string {
	seen := make(map[string]struct{})
	started := false
	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		l := strings.TrimSpace(line)
		if strings.Contains(l, "ingredient") {
			started = true
			continue
		}
		if !started {
			continue
		}
		if l == "" || utf8.RuneCountInString(l) > 100 || containsAny(l, markers) {
			break
		}
		if !ingredientLine.MatchString(l) {
			continue
		}
		for _, entry := range ingredientSplit.Split(l, -1) {
			entry = strings.TrimSpace(strings.Trim(entry, " -•o*"))
			if n := utf8.RuneCountInString(entry); n > 2 && n < 40 {
				seen[entry] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Word characters and spaces are Unicode-aware; RE2's \b, \w and \s are
// ASCII-only.
const (
	wordClass  = `\p{L}\p{N}_`
	spaceClass = `\s\p{Z}\x1c-\x1f\x85`
)

var (
	ingredientLine  = regexp.MustCompile(`^[-•o*]?[` + spaceClass + `]*[` + wordClass + spaceClass + `,]+`)
	ingredientSplit = regexp.MustCompile(`,| and |/`)
)

// termPattern matches term, or its plural, as a whole word.
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^` + wordClass + `])` + regexp.QuoteMeta(strings.ToLower(term)) + `s?(?:$|[^` + wordClass + `])`)
}

func matchesAny(re *regexp.Regexp, items []string) bool {
	for _, it := range items {
		if re.MatchString(it) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
