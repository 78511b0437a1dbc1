// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
	"time"
)

// StoredObject is a listing entry of FileStorage.
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// FileStorage holds generated export files.
type FileStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]StoredObject, error)
}
