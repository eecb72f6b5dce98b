package segmenter

import (
	"strings"
	"testing"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Ingredients", true},
		{"  Experimental Results and Evaluation  ", true},
		{"Salads, Sides & Dips", true},
		{"Chapter 3 - Methods", true},
		{"123456.", true},
		{"Short", false},            // 5 chars, too short
		{"Sixsix", false},           // exactly 6 chars
		{"lowercase heading", false}, // must start uppercase
		{"Ends with a period.", false},
		{"Question mark?", false},
		{"1. Preheat the oven", false}, // numbered pattern is digits + "." only
		{"", false},
		{strings.Repeat("A", 80), false},
		{strings.Repeat("A", 79), true},
		{"Coastal\u00a0Adventures", true},
		{"Packing\u2009Tips & Tricks", true},
		{"Road\u3000Trips", true},
		{"Caf\u00e9 Culture", false}, // letters stay ASCII
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHeading(tt.line), "line %q", tt.line)
	}
}

func TestSegmentPage_BasicSections(t *testing.T) {
	page := doctree.Page{Number: 3, Text: "Ingredients\n2 cups rice\n1 can beans\nInstructions\nCook the rice.\n"}
	sections := SegmentPage("Dinner Ideas", page, DefaultConfig())

	require.Len(t, sections, 2)
	assert.Equal(t, "Ingredients", sections[0].Title)
	assert.Equal(t, "2 cups rice\n1 can beans\n", sections[0].Text)
	assert.Equal(t, "Instructions", sections[1].Title)
	assert.Equal(t, "Cook the rice.\n\n", sections[1].Text)
	for _, s := range sections {
		assert.Equal(t, 3, s.Page)
		assert.Equal(t, "Dinner Ideas", s.Document)
	}
}

func TestSegmentPage_DropsUntitledLeadByDefault(t *testing.T) {
	page := doctree.Page{Number: 1, Text: "running header text\nOverview Section\nbody line\n"}
	sections := SegmentPage("Doc", page, DefaultConfig())

	require.Len(t, sections, 1)
	assert.Equal(t, "Overview Section", sections[0].Title)
}

func TestSegmentPage_UnicodeSpaceHeading(t *testing.T) {
	page := doctree.Page{Number: 1, Text: "Coastal\u00a0Adventures\nkayak the bay\n"}
	sections := SegmentPage("Travel", page, DefaultConfig())

	require.Len(t, sections, 1)
	assert.Equal(t, "Coastal\u00a0Adventures", sections[0].Title)
	assert.Equal(t, "kayak the bay\n", sections[0].Text)
}

func TestSegmentPage_KeepUntitled(t *testing.T) {
	page := doctree.Page{Number: 1, Text: "running header text\nOverview Section\nbody line\n"}
	sections := SegmentPage("Doc", page, Config{KeepUntitled: true})

	require.Len(t, sections, 2)
	assert.Equal(t, "", sections[0].Title)
	assert.Equal(t, "running header text\n", sections[0].Text)
	assert.Equal(t, "Overview Section", sections[1].Title)
}

func TestSegmentPage_KeepUntitledSkipsBlankLead(t *testing.T) {
	page := doctree.Page{Number: 1, Text: "   \n\nOverview Section\nbody line"}
	sections := SegmentPage("Doc", page, Config{KeepUntitled: true})

	require.Len(t, sections, 1)
	assert.Equal(t, "Overview Section", sections[0].Title)
}

func TestSegmentPage_SkipsHeadingWithBlankBody(t *testing.T) {
	page := doctree.Page{Number: 1, Text: "Table of Contents\n   \nFirst Real Section\nsome text here"}
	sections := SegmentPage("Doc", page, DefaultConfig())

	require.Len(t, sections, 1)
	assert.Equal(t, "First Real Section", sections[0].Title)
}

func TestSegmentPage_EmptyPage(t *testing.T) {
	assert.Empty(t, SegmentPage("Doc", doctree.Page{Number: 1}, DefaultConfig()))
	assert.Empty(t, SegmentPage("Doc", doctree.Page{Number: 1}, Config{KeepUntitled: true}))
}

func TestSegmentPage_Deterministic(t *testing.T) {
	page := doctree.Page{Number: 2, Text: "Getting Started\nA\nB\nAdvanced Topics\nC\n"}
	first := SegmentPage("Doc", page, DefaultConfig())
	second := SegmentPage("Doc", page, DefaultConfig())
	assert.Equal(t, first, second)
}

func TestSegmentPage_NoEmptyBodies(t *testing.T) {
	text := "Alpha Section\n\nBeta Section\n  \nGamma Section\nreal content\nDelta Section\n"
	for _, cfg := range []Config{DefaultConfig(), {KeepUntitled: true}} {
		for _, s := range SegmentPage("Doc", doctree.Page{Number: 1, Text: text}, cfg) {
			assert.NotEmpty(t, strings.TrimSpace(s.Text), "section %q has blank body", s.Title)
		}
	}
}

func TestSegmentPages_PreservesPageNumbers(t *testing.T) {
	pages := []doctree.Page{
		{Number: 1, Text: "First Heading\nbody one"},
		{Number: 2, Text: ""},
		{Number: 3, Text: "Third Heading\nbody three"},
	}
	sections := SegmentPages("Doc", pages, DefaultConfig())

	require.Len(t, sections, 2)
	assert.Equal(t, 1, sections[0].Page)
	assert.Equal(t, 3, sections[1].Page)
}
