// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/pkg/config"
)

// CleanupProcessor handles cleanup tasks
type CleanupProcessor struct {
	storage ports.FileStorage
	config  config.ExportConfig
	logger  *slog.Logger
	now     func() time.Time
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(storage ports.FileStorage, cfg config.ExportConfig, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		storage: storage,
		config:  cfg,
		logger:  logger.With(slog.String("processor", "cleanup")),
		now:     time.Now,
	}
}

// CleanupExports removes exported files older than the retention period.
func (p *CleanupProcessor) CleanupExports(ctx context.Context, _ *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up old exports",
		slog.Duration("retention", p.config.Retention))

	objects, err := p.storage.List(ctx, p.config.KeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	cutoff := p.now().Add(-p.config.Retention)
	var deleted, failed int
	for _, obj := range objects {
		if !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := p.storage.Delete(ctx, obj.Key); err != nil {
			failed++
			p.logger.WarnContext(ctx, "failed to delete export",
				slog.String("key", obj.Key),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	p.logger.InfoContext(ctx, "old exports cleaned up",
		slog.Int("deleted", deleted),
		slog.Int("failed", failed),
		slog.Int("kept", len(objects)-deleted-failed))

	if failed > 0 {
		return fmt.Errorf("failed to delete %d exports", failed)
	}
	return nil
}
