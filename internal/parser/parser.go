// Package parser turns document files into ordered, 1-based page text.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
)

// PageExtractor converts raw document bytes into pages of plain text.
// Headings stay on their own lines so the segmenter can find them.
type PageExtractor interface {
	Extract(r io.Reader, filename string) ([]doctree.Page, error)
}

// Options tune extractor behaviour.
type Options struct {
	FallbackPdftotext bool
	Logger            *slog.Logger
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (PageExtractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext, Logger: opts.Logger}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// singlePage wraps flat text for formats without physical pages.
func singlePage(lines []string) []doctree.Page {
	return []doctree.Page{{Number: 1, Text: strings.Join(lines, "\n")}}
}

// splitFormFeeds numbers each form-feed separated chunk as a page.
// A trailing empty chunk after the final form feed is dropped.
func splitFormFeeds(text string) []doctree.Page {
	chunks := strings.Split(text, "\f")
	if n := len(chunks); n > 1 && strings.TrimSpace(chunks[n-1]) == "" {
		chunks = chunks[:n-1]
	}
	pages := make([]doctree.Page, len(chunks))
	for i, c := range chunks {
		pages[i] = doctree.Page{Number: i + 1, Text: c}
	}
	return pages
}
