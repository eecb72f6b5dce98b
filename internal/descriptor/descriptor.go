// Package descriptor defines the JSON input and output documents of a
// ranking run and reads and writes them.
package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampFormat is the layout of Metadata.ProcessingTimestamp (UTC).
const TimestampFormat = "2006-01-02T15:04:05.000000"

// DocumentRef names one input document.
type DocumentRef struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
}

// Persona is the reader role.
type Persona struct {
	Role string `json:"role"`
}

// Job is the reader's task.
type Job struct {
	Task string `json:"task"`
}

// Input is the request descriptor.
type Input struct {
	Documents []DocumentRef `json:"documents"`
	Persona   Persona       `json:"persona"`
	Job       Job           `json:"job_to_be_done"`
}

// Metadata echoes the request alongside the processing time.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection is one ranked section.
type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// SubsectionAnalysis is the refined excerpt for the section at the same index.
type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Output is the result descriptor. ExtractedSections and SubsectionAnalysis
// are parallel slices.
type Output struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// Timestamp formats t for Metadata.ProcessingTimestamp.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Titles returns the document titles in input order.
func (in Input) Titles() []string {
	titles := make([]string, len(in.Documents))
	for i, d := range in.Documents {
		titles[i] = d.Title
	}
	return titles
}

// ParseInput decodes an input descriptor.
func ParseInput(data []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("decode input descriptor: %w", err)
	}
	return in, nil
}

// LoadInput reads and decodes the input descriptor at path.
func LoadInput(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read input descriptor: %w", err)
	}
	return ParseInput(data)
}

// Encode renders out with 4-space indentation and without HTML escaping.
func Encode(out *Output) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode output descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteOutput writes out to path through a temp file in the same directory,
// so a failed write never leaves a partial file behind.
func WriteOutput(path string, out *Output) error {
	data, err := Encode(out)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".docrank-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
