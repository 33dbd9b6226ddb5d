package web

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/vitalcoach/backend/internal/importer"
	"github.com/vitalcoach/backend/internal/logging"
)

// handleImport validates an uploaded CSV and returns the full per-row
// report without writing anything. The coach reviews the report and then
// commits via handleImportCommit.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	s.metrics.importRows.WithLabelValues("valid").Add(float64(result.ValidRows))
	s.metrics.importRows.WithLabelValues("invalid").Add(float64(result.InvalidRows))

	logging.FromContext(r.Context()).Info("import validated",
		"total_rows", result.TotalRows,
		"valid_rows", result.ValidRows,
		"invalid_rows", result.InvalidRows,
		"parse_errors", len(result.ParseErrors),
	)

	writeJSON(w, r, http.StatusOK, result)
}

// ImportCommitResponse reports what an import commit wrote.
type ImportCommitResponse struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed,omitempty"`
}

// handleImportCommit re-validates the uploaded CSV and persists the valid
// rows. Invalid rows are skipped, never partially written.
func (s *Server) handleImportCommit(w http.ResponseWriter, r *http.Request) {
	result, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	items := importer.ValidItems(&result)
	if len(items) == 0 {
		writeError(w, r, http.StatusBadRequest, "no valid rows to import")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	insertResult, err := s.foods.BulkInsert(ctx, items)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	resp := ImportCommitResponse{
		Inserted: insertResult.Inserted,
		Skipped:  result.InvalidRows,
	}
	for _, batch := range insertResult.Failed {
		resp.Failed = append(resp.Failed, batch.Names...)
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// parseUpload reads the multipart CSV upload and runs it through the
// import validator. On failure it writes the error response and returns
// ok=false.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (importer.ParseResult, bool) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return importer.ParseResult{}, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return importer.ParseResult{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to read file")
		return importer.ParseResult{}, false
	}

	existingNames, err := s.foods.ExistingNames(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return importer.ParseResult{}, false
	}

	result := importer.Parse(string(data), existingNames)
	if result.Failed() {
		writeErrorDetails(w, r, http.StatusBadRequest, "Failed to parse CSV", result.ParseErrors)
		return importer.ParseResult{}, false
	}
	if result.TotalRows > s.cfg.Import.MaxRows {
		writeError(w, r, http.StatusBadRequest,
			"file has "+strconv.Itoa(result.TotalRows)+" rows, limit is "+strconv.Itoa(s.cfg.Import.MaxRows))
		return importer.ParseResult{}, false
	}

	return result, true
}

// handleDownloadTemplate serves the CSV import template.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv;charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="food_items_template.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, importer.Template()); err != nil {
		logging.FromContext(r.Context()).Error("template write error", "error", err)
	}
}
