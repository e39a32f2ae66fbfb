package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/codewithwu/ContractAI/internal/analyze"
	"github.com/codewithwu/ContractAI/internal/docio"
)

// handleAnalyze accepts one uploaded contract, runs the full pipeline
// synchronously and returns the document report. Analysis is all-or-nothing:
// a failed run emits no report at all.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !docio.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	analyzer := s.analyzer
	if v := r.FormValue("policy"); v != "" {
		policy, err := analyze.ParsePolicy(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		analyzer = analyzer.WithPolicy(policy)
	}

	reader, err := docio.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pr, ok := reader.(*docio.PDFReader); ok {
		pr.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	paragraphs, err := reader.Read(bytes.NewReader(data), filename)
	if err != nil {
		if errors.Is(err, docio.ErrUnreadable) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "read document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	report, err := analyzer.Document(r.Context(), paragraphs)
	if err != nil {
		if errors.Is(err, analyze.ErrEmptyDocument) {
			jsonError(w, "document contains no analyzable clauses", http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "analyze document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	report.FileName = filename

	resp := map[string]any{"report": report}
	if r.FormValue("save") != "false" {
		saved, err := s.store.Save(r.Context(), report)
		if err != nil {
			// The analysis itself succeeded; report the persistence
			// failure alongside the result.
			s.log.Error("report save failed", "file", filename, "error", err)
			resp["save_error"] = err.Error()
		} else {
			resp["report_id"] = saved.ID
			resp["json_path"] = saved.JSONPath
			resp["text_path"] = saved.TextPath
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
