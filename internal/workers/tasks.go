// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/hibiken/asynq"

	redis_a "github.com/ammerola/retifica-be/internal/adapters/redis_adapter"
	"github.com/ammerola/retifica-be/internal/export"
)

const (
	TypeExportReport   = "export:report"
	TypeCleanupExports = "export:cleanup"
)

// JobStatus is the lifecycle state of an export job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// ExportJob is the status record kept in the cache under JobKey(ID).
type ExportJob struct {
	ID        string        `json:"id"`
	Status    JobStatus     `json:"status"`
	Format    export.Format `json:"format"`
	Kind      export.Kind   `json:"kind,omitempty"`
	Key       string        `json:"key,omitempty"`
	URL       string        `json:"url,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ExportPayload carries the snapshot taken when the job was requested, so the
// worker renders exactly what the caller saw.
type ExportPayload struct {
	JobID  string         `json:"job_id"`
	Format export.Format  `json:"format"`
	Kind   export.Kind    `json:"kind,omitempty"`
	Data   export.Dataset `json:"data"`
}

// JobKey is the cache key of an export job status.
func JobKey(id string) string {
	return redis_a.BuildKey(redis_a.PrefixExportJob, id)
}

// NewExportTask builds the asynq task for payload.
func NewExportTask(payload ExportPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}
	return asynq.NewTask(TypeExportReport, b), nil
}

// NewCleanupTask builds the periodic export cleanup task.
func NewCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupExports, nil)
}

// ObjectKey is where a job's file is stored.
func ObjectKey(prefix string, payload ExportPayload, at time.Time) string {
	return path.Join(prefix, payload.JobID, fileName(payload, at))
}

func fileName(payload ExportPayload, at time.Time) string {
	return export.Filename(export.FilePrefix(payload.Format, payload.Kind), string(payload.Format), at)
}
