package refiner

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/textnorm"
)

const (
	// MaxChars bounds the refined text, ellipsis included.
	MaxChars = 800
	// Ellipsis marks a truncated excerpt.
	Ellipsis = "..."

	excerptUnits    = 7
	minContentChars = 30
)

// A unit boundary is sentence punctuation followed by whitespace, or a newline
// followed by a hyphen bullet. The first character of the match stays with the
// preceding unit.
var boundary = regexp.MustCompile(`[.!?]\s+|\n-\s*`)

// Refine turns a section body into a short excerpt: it skips leading
// fragments, keeps up to seven sentence-like units and caps the length.
func Refine(text string) string {
	units := Units(textnorm.Clean(text))
	if len(units) == 0 {
		return ""
	}

	start := 0
	for i, u := range units {
		if utf8.RuneCountInString(u) > minContentChars && startsUpper(u) {
			start = i
			break
		}
	}
	end := min(start+excerptUnits, len(units))
	return truncate(strings.Join(units[start:end], " "))
}

// Units splits text into trimmed, non-empty sentence-like units.
func Units(text string) []string {
	var units []string
	add := func(s string) {
		s = strings.TrimFunc(s, isUnitPadding)
		if s != "" {
			units = append(units, s)
		}
	}
	last := 0
	for _, m := range boundary.FindAllStringIndex(text, -1) {
		add(text[last : m[0]+1])
		last = m[1]
	}
	add(text[last:])
	return units
}

func isUnitPadding(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '•'
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxChars-len(Ellipsis)]) + Ellipsis
}
