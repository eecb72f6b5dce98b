package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleExtractionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"workers": s.cfg.WorkerCount,
		"stats":   s.runner.Stats().Snapshot(),
	})
}
