package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docrank/internal/descriptor"
	"github.com/dgallion1/docrank/internal/dietary"
	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/segmenter"
)

// documentResult is what one worker produces for one input document.
type documentResult struct {
	found    bool
	title    string
	fullText string
	admitted []doctree.Section
}

// worker extracts, segments and filters a single document.
type worker struct {
	log        *slog.Logger
	stats      *ExtractionStats
	filter     *dietary.Filter
	segCfg     segmenter.Config
	parserOpts parser.Options
	baseDir    string
}

func (w *worker) process(ctx context.Context, ref descriptor.DocumentRef) (documentResult, error) {
	if err := ctx.Err(); err != nil {
		return documentResult{}, err
	}
	log := w.log.With("file", ref.Filename, "document", ref.Title)

	path := filepath.Join(w.baseDir, ref.Filename)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		log.Warn("document skipped", "reason", "file not found")
		return documentResult{}, nil
	}
	if err != nil {
		return documentResult{}, fmt.Errorf("stat %s: %w", ref.Filename, err)
	}

	start := time.Now()
	ext, err := parser.ForFile(ref.Filename, w.parserOpts)
	if err != nil {
		return documentResult{}, fmt.Errorf("document %s: %w", ref.Filename, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return documentResult{}, fmt.Errorf("open %s: %w", ref.Filename, err)
	}
	defer f.Close()

	pages, err := ext.Extract(f, ref.Filename)
	if err != nil {
		return documentResult{}, fmt.Errorf("document %s: %w", ref.Filename, err)
	}
	elapsed := time.Since(start)
	w.stats.Record(elapsed, len(pages))

	sections := segmenter.SegmentPages(ref.Title, pages, w.segCfg)
	admitted := make([]doctree.Section, 0, len(sections))
	for _, s := range sections {
		if w.filter.Admit(s) {
			admitted = append(admitted, s)
		}
	}

	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}

	log.Info("document extracted",
		"pages", len(pages),
		"sections", len(sections),
		"admitted", len(admitted),
		"duration_ms", elapsed.Milliseconds(),
	)

	return documentResult{
		found:    true,
		title:    ref.Title,
		fullText: strings.Join(texts, " "),
		admitted: admitted,
	}, nil
}
