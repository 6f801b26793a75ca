package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/peervault/peervault/internal/inventory/transfer"
	pkgapi "github.com/peervault/peervault/pkg/api"
)

// handleExport serializes the inventory and returns it as a downloadable
// JSON document. The bundle is the response body itself, not wrapped in the
// usual envelope, so the file round-trips straight back into import.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())

	bundle, err := s.exporter.Export(r.Context())
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	if err := s.bus.PublishExportCompleted(bundle.PeersCount); err != nil {
		logger.Warn("failed to publish export completed event", "error", err)
	}

	filename := fmt.Sprintf("peervault-export-%s.json", bundle.ExportedAt.Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Peers-Count", fmt.Sprintf("%d", bundle.PeersCount))
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(bundle)
}

// handleImport accepts an export bundle (or a bare peer array), reconciles it
// against the inventory, and reports one result per record in input order.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())
	start := time.Now()

	body, err := ReadBody(r)
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	candidates, err := transfer.ParseBundle(body)
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	results, err := s.importer.Import(r.Context(), candidates)
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	summary := transfer.Summarize(results)
	if err := s.bus.PublishImportCompleted(summary.Succeeded, summary.Failed, time.Since(start)); err != nil {
		logger.Warn("failed to publish import completed event", "error", err)
	}

	resp := pkgapi.ImportResponse{
		Results:   make([]pkgapi.ImportResult, len(results)),
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
	}
	for i, res := range results {
		resp.Results[i] = pkgapi.ImportResult{
			Success: res.Success,
			Name:    res.Name,
			Error:   res.Error,
		}
	}

	WriteSuccess(w, http.StatusOK, resp)
}
