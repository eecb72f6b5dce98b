package segmenter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/doctree"
)

// Config controls segmentation behavior.
type Config struct {
	// KeepUntitled emits non-blank text that appears before the first
	// heading of a page as a section with an empty title.
	KeepUntitled bool
}

// DefaultConfig drops untitled leading text.
func DefaultConfig() Config {
	return Config{}
}

// Heading lines are numbered ("3.") or title-like: an uppercase letter
// followed by letters, digits, spaces, hyphens, ampersands and commas.
// Spaces include Unicode separators such as NBSP and thin space, which PDF
// text often carries.
var headingPattern = regexp.MustCompile(`^([0-9]+\.|[A-Z][A-Za-z0-9\s\p{Z}\x1c-\x1f\x85\-&,]+)$`)

const (
	minHeadingLen = 6  // exclusive
	maxHeadingLen = 80 // exclusive
)

// IsHeading reports whether a raw line looks like a section heading.
func IsHeading(line string) bool {
	l := strings.TrimSpace(line)
	n := utf8.RuneCountInString(l)
	if n <= minHeadingLen || n >= maxHeadingLen {
		return false
	}
	return headingPattern.MatchString(l)
}

// SegmentPage splits one page of text into sections belonging to document.
func SegmentPage(document string, page doctree.Page, cfg Config) []doctree.Section {
	var sections []doctree.Section

	current := doctree.Section{Document: document, Page: page.Number}
	var body strings.Builder
	titled := false

	flush := func() {
		text := body.String()
		if strings.TrimSpace(text) == "" {
			return
		}
		if !titled && !cfg.KeepUntitled {
			return
		}
		current.Text = text
		sections = append(sections, current)
	}

	for _, line := range strings.Split(page.Text, "\n") {
		if IsHeading(line) {
			flush()
			current = doctree.Section{Document: document, Page: page.Number, Title: strings.TrimSpace(line)}
			body.Reset()
			titled = true
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()

	return sections
}

// SegmentPages segments every page of a document in page order.
func SegmentPages(document string, pages []doctree.Page, cfg Config) []doctree.Section {
	var sections []doctree.Section
	for _, p := range pages {
		sections = append(sections, SegmentPage(document, p, cfg)...)
	}
	return sections
}
