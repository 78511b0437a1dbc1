// internal/handlers/reports.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/core/services"
)

// ReportHandler serves metrics, filtered listings and per-batch reports.
type ReportHandler struct {
	responder
	store   ports.Store
	reports *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(store ports.Store, reports *services.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "reports"))},
		store:     store,
		reports:   reports,
	}
}

// Metrics handles GET /api/v1/metrics
func (h *ReportHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Metrics())
}

// ServiceTypes handles GET /api/v1/service-types
func (h *ReportHandler) ServiceTypes(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"types":          h.store.Catalog().Types(),
		"additionalPart": domain.ServiceAdditionalParts,
	})
}

// BatchReport handles GET /api/v1/reports/batches
func (h *ReportHandler) BatchReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.BatchReport(r.Context(), r.URL.Query().Get("batch_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Batch not found")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, report)
}

// EngineReport handles GET /api/v1/reports/engines
func (h *ReportHandler) EngineReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEngineFilter(r)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.reports.FilterEngines(r.Context(), filter))
}

// Status handles GET /api/v1/status
func (h *ReportHandler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, http.StatusOK, h.store.Status())
}
