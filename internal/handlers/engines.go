// internal/handlers/engines.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

// EngineHandler handles motor requests
type EngineHandler struct {
	responder
	store ports.Store
}

// NewEngineHandler creates a new engine handler
func NewEngineHandler(store ports.Store, logger *slog.Logger) *EngineHandler {
	return &EngineHandler{
		responder: responder{logger: logger.With(slog.String("handler", "engines"))},
		store:     store,
	}
}

// ListEngines handles GET /api/v1/engines
func (h *EngineHandler) ListEngines(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEngineFilter(r)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, filter.Apply(h.store.Engines()))
}

// GetEngine handles GET /api/v1/engines/{id}
func (h *EngineHandler) GetEngine(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.store.Engine(r.PathValue("id"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "Engine not found")
		return
	}
	h.respondJSON(w, http.StatusOK, engine)
}

// CreateEngine handles POST /api/v1/engines
func (h *EngineHandler) CreateEngine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.NewEngine
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	engine, err := h.store.AddEngine(ctx, req)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "engine created",
		slog.String("engine_id", engine.ID),
		slog.String("batch_id", engine.BatchID),
		slog.String("total", engine.Total().StringFixed(2)))

	h.respondJSON(w, http.StatusCreated, engine)
}

// UpdateEngine handles PUT /api/v1/engines/{id}
func (h *EngineHandler) UpdateEngine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var patch domain.EnginePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	engine, found, err := h.store.UpdateEngine(ctx, id, patch)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, http.StatusNotFound, "Engine not found")
		return
	}

	h.respondJSON(w, http.StatusOK, engine)
}

// DeleteEngine handles DELETE /api/v1/engines/{id}
func (h *EngineHandler) DeleteEngine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	found, err := h.store.DeleteEngine(ctx, id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, http.StatusNotFound, "Engine not found")
		return
	}

	h.logger.InfoContext(ctx, "engine deleted", slog.String("engine_id", id))
	w.WriteHeader(http.StatusNoContent)
}
