package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/middleware"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/pipeline"
)

func newTestHandler(t *testing.T) *AnalyzeHandler {
	t.Helper()
	p, err := pipeline.NewDefault(pipeline.Options{})
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	return NewAnalyzeHandler(p)
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("statement_file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestAnalyzeUpload(t *testing.T) {
	h := newTestHandler(t)

	csv := "Date,Description,Debit,Credit\n01/02/2023,SWIGGY ORDER,350.00,\n"
	body, contentType := multipartUpload(t, "statement.csv", csv)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report pipeline.Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Statement == nil || len(report.Statement.Transactions) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Summary == nil || !report.Summary.TotalDebit.IsPositive() {
		t.Errorf("summary missing debit total: %+v", report.Summary)
	}
}

func TestAnalyzeRejectsGet(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeOversizedUpload(t *testing.T) {
	h := newTestHandler(t)

	// Body far over a 64-byte cap. The wrapped reader must surface as a
	// 413, not as a missing upload field.
	csv := "Date,Description,Debit,Credit\n"
	for i := 0; i < 40; i++ {
		csv += "01/02/2023,SWIGGY ORDER,350.00,\n"
	}
	body, contentType := multipartUpload(t, "statement.csv", csv)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	capped := middleware.MaxBytes(64)(http.HandlerFunc(h.Analyze))
	capped.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error message should be populated")
	}
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	h := newTestHandler(t)

	body, contentType := multipartUpload(t, "statement.xlsx", "binary junk")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestAnalyzeNoTable(t *testing.T) {
	h := newTestHandler(t)

	body, contentType := multipartUpload(t, "statement.csv", "just,some,prose\nwith,no,structure\n")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error message should be populated")
	}
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
