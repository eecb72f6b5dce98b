package descriptor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"documents": [
			{"filename": "a.pdf", "title": "Doc A"},
			{"filename": "b.pdf", "title": "Doc B"}
		],
		"persona": {"role": "Food Contractor"},
		"job_to_be_done": {"task": "vegetarian buffet"}
	}`), 0o644))

	in, err := LoadInput(path)
	require.NoError(t, err)
	assert.Equal(t, "Food Contractor", in.Persona.Role)
	assert.Equal(t, "vegetarian buffet", in.Job.Task)
	assert.Equal(t, []string{"Doc A", "Doc B"}, in.Titles())
	assert.Equal(t, "b.pdf", in.Documents[1].Filename)
}

func TestLoadInput_Errors(t *testing.T) {
	_, err := LoadInput(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read input descriptor")

	_, err = ParseInput([]byte("{not json"))
	assert.ErrorContains(t, err, "decode input descriptor")
}

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	ts := time.Date(2025, 7, 10, 14, 3, 9, 123456789, loc)
	assert.Equal(t, "2025-07-10T12:03:09.123456", Timestamp(ts))

	// fixed width even on a whole second
	whole := time.Date(2025, 7, 10, 12, 3, 9, 0, time.UTC)
	assert.Equal(t, "2025-07-10T12:03:09.000000", Timestamp(whole))
}

func TestEncode_IndentAndNoEscaping(t *testing.T) {
	out := &Output{
		Metadata: Metadata{InputDocuments: []string{"Crème & Brûlée <Guide>"}},
		ExtractedSections: []ExtractedSection{
			{Document: "D", PageNumber: 2, SectionTitle: "S", ImportanceRank: 1},
		},
		SubsectionAnalysis: []SubsectionAnalysis{
			{Document: "D", RefinedText: "x", PageNumber: 2},
		},
	}
	data, err := Encode(out)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "Crème & Brûlée <Guide>")
	assert.Contains(t, s, "\n    \"metadata\": {")
	assert.Contains(t, s, "\n        \"input_documents\"")
	assert.True(t, strings.HasSuffix(s, "}\n"))
}

func TestWriteOutput_Atomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "output.json")

	out := &Output{ExtractedSections: []ExtractedSection{}, SubsectionAnalysis: []SubsectionAnalysis{}}
	require.NoError(t, WriteOutput(path, out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"extracted_sections": []`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not remain")
}
