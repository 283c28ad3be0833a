// Package handlers implements the HTTP API surface.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/decode"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/extract"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/pipeline"
)

// uploadField is the multipart form field carrying the statement file.
const uploadField = "statement_file"

// AnalyzeHandler handles statement uploads.
type AnalyzeHandler struct {
	pipeline *pipeline.Pipeline
}

// NewAnalyzeHandler creates the upload handler.
func NewAnalyzeHandler(p *pipeline.Pipeline) *AnalyzeHandler {
	return &AnalyzeHandler{pipeline: p}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Analyze handles POST /api/analyze. The statement arrives as a
// multipart upload; the response is the full analysis report.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		// MaxBytesReader on the body makes an oversized upload fail
		// right here; that is a size failure, not a missing field.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "missing statement_file upload")
		return
	}
	defer file.Close()

	report, err := h.pipeline.Analyze(r.Context(), header.Filename, file)
	if err != nil {
		status, msg := classifyError(err)
		if status == http.StatusInternalServerError {
			log.Printf("ERROR: analyze %s: %v", header.Filename, err)
		}
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		log.Printf("ERROR: failed to encode report for %s: %v", header.Filename, err)
	}
}

// classifyError maps pipeline failures to HTTP statuses with messages
// safe to show the uploader.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, decode.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "unsupported file format; upload a CSV or PDF statement"
	case errors.Is(err, decode.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "document has too many pages"
	case errors.Is(err, extract.ErrNoStrategy):
		return http.StatusUnprocessableEntity, "could not recognize a transaction table in this file"
	case errors.Is(err, extract.ErrNoTransactions):
		return http.StatusUnprocessableEntity, "a table was found but no valid transactions could be read from it"
	default:
		return http.StatusInternalServerError, "internal error while analyzing the statement"
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		log.Printf("ERROR: failed to encode error response: %v", err)
	}
}

// HealthCheck handles GET /health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("ERROR: failed to encode health response: %v", err)
	}
}
