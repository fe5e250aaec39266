package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"gogeomap/internal/errors"
	"gogeomap/internal/upload"

	"github.com/go-chi/chi/v5/middleware"
)

// Output formats accepted by POST /api/v1/mapsets
const (
	FormatZip  = "zip"
	FormatJSON = "json"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	table, err := upload.ReadTable(w, r, s.reader, s.config.MaxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.service.Inspect(table))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatZip
	}
	if format != FormatZip && format != FormatJSON {
		writeError(w, r, errors.InvalidInput(fmt.Sprintf("unsupported format %q, expected zip or json", format)))
		return
	}

	table, err := upload.ReadTable(w, r, s.reader, s.config.MaxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.service.GenerateMapSet(r.Context(), table, upload.ParseSelection(r.Form, true))
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Summaries have no archive, so they are always JSON
	if format == FormatJSON || !result.HasMaps() {
		writeJSON(w, http.StatusOK, result)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.ArchiveName))
	w.Header().Set("X-Run-ID", result.RunID.String())
	w.Header().Set("X-Map-Count", strconv.Itoa(result.MapSet.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Archive); err != nil {
		log.Printf("[API] failed to write archive for run %s: %v", result.RunID, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s FAILED - %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     err.Error(),
		Code:      errors.GetCode(err),
		RequestID: middleware.GetReqID(r.Context()),
	})
}
