package parser

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/dgallion1/docrank/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files one physical page at a time. A page whose text
// cannot be read comes back empty. When the container itself cannot be
// opened it falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
	Logger            *slog.Logger
}

func (p *PDFParser) Extract(r io.Reader, filename string) ([]doctree.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	pages, err := p.extractPages(data, filename)
	if err == nil {
		return pages, nil
	}
	if !p.FallbackPdftotext {
		return nil, fmt.Errorf("extract pdf %s: %w", filename, err)
	}
	text, ferr := extractPdftotext(data)
	if ferr != nil {
		return nil, fmt.Errorf("extract pdf %s: %w (fallback: %v)", filename, err, ferr)
	}
	return splitFormFeeds(text), nil
}

func (p *PDFParser) extractPages(data []byte, filename string) (pages []doctree.Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("open pdf: %v", rec)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	n := reader.NumPage()
	pages = make([]doctree.Page, n)
	for i := 1; i <= n; i++ {
		text, perr := pageText(reader, i)
		if perr != nil && p.Logger != nil {
			p.Logger.Warn("page extraction failed", "file", filename, "page", i, "error", perr)
		}
		pages[i-1] = doctree.Page{Number: i, Text: text}
	}
	return pages, nil
}

// pageText reads one page, converting library panics into errors.
func pageText(reader *pdflib.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return text, nil
}

func extractPdftotext(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docrank-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("pdftotext", "-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
