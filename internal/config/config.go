package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth for the HTTP shell
	APIKey string

	// Document locations
	InputDir  string
	OutputDir string

	// Selection
	MaxSections int

	// Worker pool
	WorkerCount int

	// Request limits
	MaxRequestBytes int64

	// Optional YAML file overriding the built-in lexicon
	LexiconPath string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCRANK_API_KEY"),

		InputDir:  envOr("INPUT_DIR", "input"),
		OutputDir: envOr("OUTPUT_DIR", "output"),

		MaxSections: envInt("MAX_SECTIONS", 5),

		WorkerCount: envInt("WORKER_COUNT", 4),

		MaxRequestBytes: envInt64("MAX_REQUEST_BYTES", 1<<20),

		LexiconPath: os.Getenv("LEXICON_PATH"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxSections <= 0 {
		cfg.MaxSections = 5
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = 1 << 20
	}

	return cfg
}

// Validate checks the settings every shell needs.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("INPUT_DIR must not be empty")
	}
	if c.MaxSections <= 0 {
		return fmt.Errorf("MAX_SECTIONS must be positive, got %d", c.MaxSections)
	}
	return nil
}

// ValidateServer additionally checks the settings the HTTP shell needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("DOCRANK_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
