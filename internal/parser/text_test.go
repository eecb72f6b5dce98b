package parser

import (
	"strings"
	"testing"
)

func TestTextParser_SinglePage(t *testing.T) {
	input := "Getting Started\nFirst line.\nSecond line."
	p := &TextParser{}
	pages, err := p.Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Number != 1 {
		t.Errorf("expected page number 1, got %d", pages[0].Number)
	}
	if pages[0].Text != input {
		t.Errorf("expected %q, got %q", input, pages[0].Text)
	}
}

func TestTextParser_FormFeedPages(t *testing.T) {
	input := "Page one text.\fPage two text.\fPage three text.\f"
	p := &TextParser{}
	pages, err := p.Extract(strings.NewReader(input), "book.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	want := []string{"Page one text.", "Page two text.", "Page three text."}
	for i, w := range want {
		if pages[i].Number != i+1 {
			t.Errorf("page[%d]: expected number %d, got %d", i, i+1, pages[i].Number)
		}
		if pages[i].Text != w {
			t.Errorf("page[%d]: expected %q, got %q", i, w, pages[i].Text)
		}
	}
}

func TestTextParser_EmptyPageKeepsNumbering(t *testing.T) {
	p := &TextParser{}
	pages, err := p.Extract(strings.NewReader("one\f\fthree"), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[1].Text != "" {
		t.Errorf("expected empty middle page, got %q", pages[1].Text)
	}
	if pages[2].Number != 3 {
		t.Errorf("expected last page number 3, got %d", pages[2].Number)
	}
}

func TestTextParser_CRLF(t *testing.T) {
	p := &TextParser{}
	pages, err := p.Extract(strings.NewReader("a\r\nb"), "win.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages[0].Text != "a\nb" {
		t.Errorf("expected normalized newlines, got %q", pages[0].Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	pages, err := p.Extract(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || pages[0].Text != "" {
		t.Errorf("expected one empty page, got %+v", pages)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"a.txt", false},
		{"a.MD", false},
		{"a.markdown", false},
		{"a.csv", false},
		{"a.htm", false},
		{"a.html", false},
		{"a.pdf", false},
		{"a.docx", false},
		{"a.xlsx", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename, Options{})
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): err=%v, wantErr=%v", tt.filename, err, tt.wantErr)
		}
		if IsSupportedExtension(tt.filename) == tt.wantErr {
			t.Errorf("IsSupportedExtension(%q) disagrees with ForFile", tt.filename)
		}
	}
}
