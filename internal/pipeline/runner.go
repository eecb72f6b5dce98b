// Package pipeline runs one ranking request end to end: per-document
// extraction in a bounded worker pool, then corpus-wide scoring, selection
// and refinement.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/descriptor"
	"github.com/dgallion1/docrank/internal/dietary"
	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/keywords"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/rank"
	"github.com/dgallion1/docrank/internal/refiner"
	"github.com/dgallion1/docrank/internal/segmenter"
)

// ErrNoSections is returned when no section survives filtering across the
// whole corpus. No output must be written in that case.
var ErrNoSections = errors.New("no valid sections found")

// Request is one ranking run.
type Request struct {
	Input descriptor.Input
	// BaseDir is where document filenames are resolved.
	BaseDir string
	// Progress, if set, is called once per finished document (found or not).
	Progress func(title string)
	// Now stamps the output. Defaults to time.Now.
	Now func() time.Time
}

// Runner executes ranking requests. It is safe for concurrent use.
type Runner struct {
	cfg      config.Config
	lex      config.Lexicon
	log      *slog.Logger
	stats    *ExtractionStats
	keywords *keywords.Extractor
	segCfg   segmenter.Config
}

// NewRunner creates a runner over cfg and the given lexicon.
func NewRunner(cfg config.Config, lex config.Lexicon, log *slog.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		lex:      lex,
		log:      log,
		stats:    NewExtractionStats(time.Hour),
		keywords: keywords.NewExtractor(lex),
		segCfg:   segmenter.DefaultConfig(),
	}
}

// Stats returns the runner's extraction latency stats.
func (r *Runner) Stats() *ExtractionStats {
	return r.stats
}

// Run processes req and returns the output descriptor. It returns
// ErrNoSections when nothing survives the dietary filter.
func (r *Runner) Run(ctx context.Context, req Request) (*descriptor.Output, error) {
	now := time.Now
	if req.Now != nil {
		now = req.Now
	}
	started := now()
	runID := runIDs.newRunID(started)
	log := r.log.With("run_id", runID)

	persona := req.Input.Persona.Role
	job := req.Input.Job.Task
	profile := dietary.NewProfile(job, r.lex)
	log.Info("run started",
		"documents", len(req.Input.Documents),
		"vegetarian", profile.Vegetarian,
		"vegan", profile.Vegan,
		"gluten_free", profile.GlutenFree,
	)

	w := &worker{
		log:        log,
		stats:      r.stats,
		filter:     dietary.NewFilter(profile, r.lex),
		segCfg:     r.segCfg,
		parserOpts: parser.Options{FallbackPdftotext: r.cfg.PDFFallbackPdftotext, Logger: log},
		baseDir:    req.BaseDir,
	}

	results := make([]documentResult, len(req.Input.Documents))
	var progressMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.WorkerCount, 1))
	for i, ref := range req.Input.Documents {
		i, ref := i, ref // per-iteration copies; module builds with go 1.21 loop semantics
		g.Go(func() error {
			res, err := w.process(gctx, ref)
			if err != nil {
				return err
			}
			results[i] = res
			if req.Progress != nil {
				progressMu.Lock()
				req.Progress(ref.Title)
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections, docs := collect(results)
	if len(sections) == 0 {
		log.Warn("no sections admitted")
		return nil, ErrNoSections
	}

	kw := r.keywords.Extract(persona, job)
	scorer := rank.NewScorer(kw, r.lex)
	scored := rank.ScoreSections(scorer, sections, docs, rank.Query(persona, job))
	picked := rank.Select(scored, r.cfg.MaxSections)

	out := assemble(req.Input, picked, started)
	log.Info("run complete",
		"sections", len(sections),
		"keywords", len(kw),
		"selected", len(picked),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return out, nil
}

// collect flattens worker results in input order. A repeated document title
// keeps its first position but takes the later document's text.
func collect(results []documentResult) ([]doctree.Section, []rank.DocumentText) {
	var sections []doctree.Section
	var docs []rank.DocumentText
	index := make(map[string]int)
	for _, res := range results {
		if !res.found {
			continue
		}
		sections = append(sections, res.admitted...)
		if i, ok := index[res.title]; ok {
			docs[i].Text = res.fullText
			continue
		}
		index[res.title] = len(docs)
		docs = append(docs, rank.DocumentText{Title: res.title, Text: res.fullText})
	}
	return sections, docs
}

func assemble(in descriptor.Input, picked []doctree.ScoredSection, started time.Time) *descriptor.Output {
	out := &descriptor.Output{
		Metadata: descriptor.Metadata{
			InputDocuments:      in.Titles(),
			Persona:             in.Persona.Role,
			JobToBeDone:         in.Job.Task,
			ProcessingTimestamp: descriptor.Timestamp(started),
		},
		ExtractedSections:  make([]descriptor.ExtractedSection, 0, len(picked)),
		SubsectionAnalysis: make([]descriptor.SubsectionAnalysis, 0, len(picked)),
	}
	for _, s := range picked {
		out.ExtractedSections = append(out.ExtractedSections, descriptor.ExtractedSection{
			Document:       s.Document,
			PageNumber:     s.Page,
			SectionTitle:   s.Title,
			ImportanceRank: s.Rank,
		})
		out.SubsectionAnalysis = append(out.SubsectionAnalysis, descriptor.SubsectionAnalysis{
			Document:    s.Document,
			RefinedText: refiner.Refine(s.Text),
			PageNumber:  s.Page,
		})
	}
	return out
}
