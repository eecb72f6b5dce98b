package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/descriptor"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("Ingredients\ntofu, rice, beans\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("Ingredients\nchicken, rice, beans\n"), 0o644))

	cfg := config.Config{
		APIKey:          testKey,
		InputDir:        dir,
		MaxSections:     5,
		WorkerCount:     2,
		MaxRequestBytes: 1 << 16,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(pipeline.NewRunner(cfg, config.DefaultLexicon(), log), log, cfg)
}

func do(t *testing.T, s *Server, method, path, body, key string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/stats/extraction", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/stats/extraction", "", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid api key")
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"documents": [{"filename": "a.txt", "title": "Doc A"}, {"filename": "b.txt", "title": "Doc B"}],
		"persona": {"role": "Food Contractor"},
		"job_to_be_done": {"task": "vegetarian recipe planning"}
	}`
	rec := do(t, s, http.MethodPost, "/api/analyze", body, testKey)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out descriptor.Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.ExtractedSections, 1)
	assert.Equal(t, "Doc B", out.ExtractedSections[0].Document)
	assert.Equal(t, 1, out.ExtractedSections[0].ImportanceRank)
	assert.Equal(t, []string{"Doc A", "Doc B"}, out.Metadata.InputDocuments)

	rec = do(t, s, http.MethodGet, "/api/stats/extraction", "", testKey)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Workers int                    `json:"workers"`
		Stats   pipeline.StatsSnapshot `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, 2, stats.Stats.Documents)
}

func TestAnalyze_NoSections(t *testing.T) {
	body := `{"documents": [{"filename": "a.txt", "title": "Doc A"}],
		"persona": {"role": "Cook"}, "job_to_be_done": {"task": "vegan dinner"}}`
	rec := do(t, newTestServer(t), http.MethodPost, "/api/analyze", body, testKey)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no valid sections")
}

func TestAnalyze_BadRequests(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"documents": [`, http.StatusBadRequest},
		{"path traversal", `{"documents": [{"filename": "../etc/passwd.txt", "title": "x"}]}`, http.StatusBadRequest},
		{"absolute path", `{"documents": [{"filename": "/etc/hosts.txt", "title": "x"}]}`, http.StatusBadRequest},
		{"unsupported type", `{"documents": [{"filename": "a.xlsx", "title": "x"}]}`, http.StatusBadRequest},
		{"too large", `{"persona": {"role": "` + strings.Repeat("x", 1<<17) + `"}}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/analyze", tt.body, testKey)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}
