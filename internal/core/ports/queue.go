// internal/core/ports/queue.go
package ports

import (
	"context"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the subset of *asynq.Client used by handlers.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
