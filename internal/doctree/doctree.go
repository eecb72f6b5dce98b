package doctree

// Page is the extracted text of one physical page.
type Page struct {
	Number int    // 1-based page number
	Text   string // Extracted text ("" when extraction failed)
}

// Section is a contiguous span of a page's text, optionally headed by a detected title.
type Section struct {
	Document string // Document title from the input descriptor
	Page     int    // Page the section was found on
	Title    string // Detected heading ("" when absent)
	Text     string // Body text, lines joined with "\n"
}

// Key identifies a section for de-duplication during selection.
type Key struct {
	Document string
	Title    string
}

// Key returns the (document, title) pair of the section.
func (s Section) Key() Key {
	return Key{Document: s.Document, Title: s.Title}
}

// ScoredSection pairs a section with its priority score. Lower is more relevant.
type ScoredSection struct {
	Section
	Score float64
	Rank  int // 1-based importance rank, 0 until selected
}

