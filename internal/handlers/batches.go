// internal/handlers/batches.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/metrics"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

// BatchHandler handles lote requests
type BatchHandler struct {
	responder
	store ports.Store
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(store ports.Store, logger *slog.Logger) *BatchHandler {
	return &BatchHandler{
		responder: responder{logger: logger.With(slog.String("handler", "batches"))},
		store:     store,
	}
}

// CreateBatchRequest is the body of POST /batches.
type CreateBatchRequest struct {
	Name        string `json:"name"`
	ClosureDate string `json:"closureDate"`
}

// BatchDetail is a batch with its aggregates and engines.
type BatchDetail struct {
	domain.BatchSummary
	Engines []domain.Engine `json:"engines"`
}

// ListBatches handles GET /api/v1/batches
func (h *BatchHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.BatchSummaries())
}

// GetBatch handles GET /api/v1/batches/{id}
func (h *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.store.Batch(r.PathValue("id"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "Batch not found")
		return
	}

	engines := h.store.EnginesByBatch(batch.ID)
	h.respondJSON(w, http.StatusOK, BatchDetail{
		BatchSummary: metrics.ForBatch(batch, engines),
		Engines:      engines,
	})
}

// CreateBatch handles POST /api/v1/batches
func (h *BatchHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	batch, err := h.store.AddBatch(ctx, req.Name, req.ClosureDate)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "batch created",
		slog.String("batch_id", batch.ID),
		slog.String("name", batch.Name))

	h.respondJSON(w, http.StatusCreated, batch)
}

// UpdateBatch handles PUT /api/v1/batches/{id}
func (h *BatchHandler) UpdateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var patch domain.BatchPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	batch, found, err := h.store.UpdateBatch(ctx, id, patch)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, http.StatusNotFound, "Batch not found")
		return
	}

	h.respondJSON(w, http.StatusOK, batch)
}

// DeleteBatch handles DELETE /api/v1/batches/{id}. The batch's engines are
// removed with it.
func (h *BatchHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	found, err := h.store.DeleteBatch(ctx, id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, http.StatusNotFound, "Batch not found")
		return
	}

	h.logger.InfoContext(ctx, "batch deleted", slog.String("batch_id", id))
	w.WriteHeader(http.StatusNoContent)
}
