package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/descriptor"
	"github.com/dgallion1/docrank/internal/pipeline"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	inputPath := flag.String("input", filepath.Join(cfg.InputDir, "input.json"), "input descriptor")
	outputPath := flag.String("output", filepath.Join(cfg.OutputDir, "output.json"), "output descriptor")
	lexiconPath := flag.String("lexicon", cfg.LexiconPath, "YAML lexicon overriding the built-in word tables")
	verbose := flag.Bool("v", false, "log progress details")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *inputPath, *outputPath, *lexiconPath, *verbose); err != nil {
		if errors.Is(err, pipeline.ErrNoSections) {
			fmt.Println("No valid sections found.")
			os.Exit(1)
		}
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger, inputPath, outputPath, lexiconPath string, verbose bool) error {
	lex, err := config.LoadLexicon(lexiconPath)
	if err != nil {
		return err
	}
	in, err := descriptor.LoadInput(inputPath)
	if err != nil {
		return err
	}

	req := pipeline.Request{Input: in, BaseDir: cfg.InputDir}
	if !verbose {
		bar := progressBar(len(in.Documents))
		defer bar.Finish()
		req.Progress = func(title string) {
			bar.Describe(color.BlueString(title))
			bar.Add(1)
		}
	}

	out, err := pipeline.NewRunner(cfg, lex, log).Run(ctx, req)
	if err != nil {
		return err
	}
	if err := descriptor.WriteOutput(outputPath, out); err != nil {
		return err
	}

	color.Green("Extraction complete. Output written to %s\n", outputPath)
	return nil
}

func progressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(color.BlueString("extracting")),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
