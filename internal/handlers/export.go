// internal/handlers/export.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/ammerola/retifica-be/internal/adapters/redis_adapter"
	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/export"
	"github.com/ammerola/retifica-be/internal/pkg/config"
	"github.com/ammerola/retifica-be/internal/workers"
)

// ExportHandler serves file downloads and asynchronous export jobs.
type ExportHandler struct {
	responder
	store    ports.Store
	enqueuer ports.TaskEnqueuer
	cache    ports.CacheRepository
	config   config.ExportConfig
	now      func() time.Time
}

// NewExportHandler creates a new export handler. enqueuer and cache may be
// nil, which disables export jobs.
func NewExportHandler(store ports.Store, enqueuer ports.TaskEnqueuer, cache ports.CacheRepository, cfg config.ExportConfig, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "export"))},
		store:     store,
		enqueuer:  enqueuer,
		cache:     cache,
		config:    cfg,
		now:       time.Now,
	}
}

// CreateExportJobRequest is the body of POST /export/jobs.
type CreateExportJobRequest struct {
	Format string `json:"format"`
	Kind   string `json:"kind,omitempty"`
}

func (h *ExportHandler) dataset(r *http.Request) (export.Dataset, error) {
	filter, err := parseEngineFilter(r)
	if err != nil {
		return export.Dataset{}, err
	}
	return export.Dataset{
		Batches: h.store.Batches(),
		Engines: filter.Apply(h.store.Engines()),
	}, nil
}

// CSV returns the handler of GET /api/v1/export/{kind}.csv
func (h *ExportHandler) CSV(kind export.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h.dataset(r)
		if err != nil {
			h.respondStoreError(w, r, err)
			return
		}
		h.serveFile(w, r, export.FormatCSV, kind, data)
	}
}

// XLSX handles GET /api/v1/export/report.xlsx
func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.dataset(r)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.serveFile(w, r, export.FormatXLSX, "", data)
}

// Backup handles GET /api/v1/export/backup.json. Filters are ignored.
func (h *ExportHandler) Backup(w http.ResponseWriter, r *http.Request) {
	data := export.Dataset{Batches: h.store.Batches(), Engines: h.store.Engines()}
	h.serveFile(w, r, export.FormatJSON, "", data)
}

func (h *ExportHandler) serveFile(w http.ResponseWriter, r *http.Request, format export.Format, kind export.Kind, data export.Dataset) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := export.Render(&buf, format, kind, data); err != nil {
		h.logger.ErrorContext(ctx, "failed to render export",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	filename := export.Filename(export.FilePrefix(format, kind), string(format), h.now())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(ctx, "failed to write export", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "export generated",
		slog.String("file", filename),
		slog.Int("engines", len(data.Engines)))
}

// CreateJob handles POST /api/v1/export/jobs
func (h *ExportHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.enqueuer == nil || h.cache == nil {
		h.respondError(w, http.StatusServiceUnavailable, "Export jobs are not available")
		return
	}

	var req CreateExportJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "format"})
		return
	}
	var kind export.Kind
	if format == export.FormatCSV {
		if kind, err = export.ParseKind(req.Kind); err != nil {
			h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "kind"})
			return
		}
	}

	data, err := h.dataset(r)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	payload := workers.ExportPayload{
		JobID:  uuid.NewString(),
		Format: format,
		Kind:   kind,
		Data:   data,
	}
	task, err := workers.NewExportTask(payload)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to create export job")
		return
	}

	now := h.now()
	job := workers.ExportJob{
		ID:        payload.JobID,
		Status:    workers.JobQueued,
		Format:    format,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.cache.SetWithTTL(ctx, workers.JobKey(job.ID), job, h.config.JobTTL); err != nil {
		h.logger.ErrorContext(ctx, "failed to store export job",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create export job")
		return
	}

	info, err := h.enqueuer.EnqueueContext(ctx, task,
		asynq.TaskID(job.ID),
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Timeout(h.config.JobTimeout),
		asynq.Retention(h.config.JobTTL))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue export job",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()))
		_ = h.cache.Delete(ctx, workers.JobKey(job.ID))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue export job")
		return
	}

	h.logger.InfoContext(ctx, "export job enqueued",
		slog.String("job_id", job.ID),
		slog.String("queue", info.Queue),
		slog.String("format", string(format)))

	w.Header().Set("Location", "/api/v1/export/jobs/"+job.ID)
	h.respondJSON(w, http.StatusAccepted, job)
}

// GetJob handles GET /api/v1/export/jobs/{id}
func (h *ExportHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if h.cache == nil {
		h.respondError(w, http.StatusServiceUnavailable, "Export jobs are not available")
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job workers.ExportJob
	if err := h.cache.Get(ctx, workers.JobKey(id), &job); err != nil {
		if errors.Is(err, redis_a.ErrCacheMiss) {
			h.respondError(w, http.StatusNotFound, "Export job not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to read export job",
			slog.String("job_id", id),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to read export job")
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}
