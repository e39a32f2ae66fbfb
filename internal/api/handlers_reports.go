package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/codewithwu/ContractAI/internal/reportstore"
	"github.com/go-chi/chi/v5"
)

// handleListReports returns the analysis history, newest first.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list reports: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []reportstore.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"reports": entries})
}

// handleGetReport returns one full stored report.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	report, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, reportstore.ErrNotFound) {
			jsonError(w, "report not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// handleDeleteReport removes a report and its files.
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, reportstore.ErrNotFound) {
			jsonError(w, "report not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"deleted": id})
}
