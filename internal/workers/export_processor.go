// internal/workers/export_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/export"
	"github.com/ammerola/retifica-be/internal/pkg/config"
	"github.com/ammerola/retifica-be/internal/pkg/logger"
)

// ExportProcessor renders export jobs and uploads them to file storage.
type ExportProcessor struct {
	storage ports.FileStorage
	cache   ports.CacheRepository
	config  config.ExportConfig
	logger  *slog.Logger
	now     func() time.Time
}

// NewExportProcessor creates a new export processor
func NewExportProcessor(storage ports.FileStorage, cache ports.CacheRepository, cfg config.ExportConfig, logger *slog.Logger) *ExportProcessor {
	return &ExportProcessor{
		storage: storage,
		cache:   cache,
		config:  cfg,
		logger:  logger.With(slog.String("processor", "export")),
		now:     time.Now,
	}
}

// ProcessExport handles TypeExportReport tasks.
func (p *ExportProcessor) ProcessExport(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.JobID == "" {
		return fmt.Errorf("export payload without job id: %w", asynq.SkipRetry)
	}

	ctx = logger.WithValue(ctx, logger.ContextKeyJobID, payload.JobID)
	p.logger.InfoContext(ctx, "processing export",
		slog.String("format", string(payload.Format)),
		slog.String("kind", string(payload.Kind)),
		slog.Int("engines", len(payload.Data.Engines)))

	job := ExportJob{
		ID:     payload.JobID,
		Format: payload.Format,
		Kind:   payload.Kind,
	}
	if err := p.cache.Get(ctx, JobKey(payload.JobID), &job); err != nil {
		job.CreatedAt = p.now()
	}
	p.save(ctx, job, JobProcessing)

	var buf bytes.Buffer
	if err := export.Render(&buf, payload.Format, payload.Kind, payload.Data); err != nil {
		job.Error = err.Error()
		p.save(ctx, job, JobFailed)
		return fmt.Errorf("failed to render export: %v: %w", err, asynq.SkipRetry)
	}

	key := ObjectKey(p.config.KeyPrefix, payload, p.now())
	if _, err := p.storage.Upload(ctx, key, &buf, payload.Format.ContentType()); err != nil {
		job.Error = err.Error()
		p.save(ctx, job, JobFailed)
		return fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := p.storage.GetPresignedURL(ctx, key, p.config.URLExpiry)
	if err != nil {
		job.Error = err.Error()
		p.save(ctx, job, JobFailed)
		return fmt.Errorf("failed to presign export: %w", err)
	}

	job.Key = key
	job.URL = url
	job.Error = ""
	p.save(ctx, job, JobCompleted)

	p.logger.InfoContext(ctx, "export completed",
		slog.String("key", key),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (p *ExportProcessor) save(ctx context.Context, job ExportJob, status JobStatus) {
	job.Status = status
	job.UpdatedAt = p.now()
	if err := p.cache.SetWithTTL(ctx, JobKey(job.ID), job, p.config.JobTTL); err != nil {
		p.logger.WarnContext(ctx, "failed to save export job status",
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
	}
}
