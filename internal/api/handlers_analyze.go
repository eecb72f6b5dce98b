package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/docrank/internal/descriptor"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/pipeline"
)

// handleAnalyze runs one ranking request against documents under InputDir.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	in, err := descriptor.ParseInput(body)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateDocuments(in.Documents); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.runner.Run(r.Context(), pipeline.Request{
		Input:   in,
		BaseDir: s.cfg.InputDir,
	})
	if errors.Is(err, pipeline.ErrNoSections) {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		s.log.Error("analyze failed", "error", err)
		jsonError(w, "analysis failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := descriptor.Encode(out)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// validateDocuments rejects filenames that escape InputDir or that no
// extractor can read.
func validateDocuments(docs []descriptor.DocumentRef) error {
	for _, d := range docs {
		if !filepath.IsLocal(d.Filename) {
			return fmt.Errorf("invalid document filename: %q", d.Filename)
		}
		if !parser.IsSupportedExtension(d.Filename) {
			return fmt.Errorf("unsupported file type: %q", filepath.Ext(d.Filename))
		}
	}
	return nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
