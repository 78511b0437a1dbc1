// internal/workers/export_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/ammerola/retifica-be/internal/adapters/redis_adapter"
	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/export"
	"github.com/ammerola/retifica-be/internal/workers"
	"github.com/ammerola/retifica-be/test/helpers"
	"github.com/ammerola/retifica-be/test/mocks"
)

func dataset() export.Dataset {
	batch := helpers.CreateTestBatch()
	return export.Dataset{
		Batches: []domain.Batch{batch},
		Engines: helpers.CreateTestEngines(batch.ID, 2),
	}
}

func exportTask(t *testing.T, payload workers.ExportPayload) *asynq.Task {
	t.Helper()
	task, err := workers.NewExportTask(payload)
	require.NoError(t, err)
	return task
}

func TestExportProcessor_ProcessExport(t *testing.T) {
	tests := []struct {
		name          string
		payload       workers.ExportPayload
		setupMocks    func(*mocks.MockFileStorage)
		expectedError bool
		skipRetry     bool
		validateJob   func(*testing.T, workers.ExportJob)
	}{
		{
			name:    "uploads_csv_and_records_url",
			payload: workers.ExportPayload{JobID: "job-1", Format: export.FormatCSV, Kind: export.KindEngines, Data: dataset()},
			setupMocks: func(storage *mocks.MockFileStorage) {
				storage.EXPECT().
					Upload(gomock.Any(), gomock.Any(), gomock.Any(), export.ContentTypeCSV).
					DoAndReturn(func(_ context.Context, key string, data io.Reader, _ string) (string, error) {
						assert.True(t, strings.HasPrefix(key, "exports/job-1/relatorio-engines_"), key)
						assert.True(t, strings.HasSuffix(key, ".csv"), key)
						body, err := io.ReadAll(data)
						require.NoError(t, err)
						assert.Contains(t, string(body), `"AP-0001"`)
						return key, nil
					})
				storage.EXPECT().
					GetPresignedURL(gomock.Any(), gomock.Any(), time.Hour).
					Return("https://bucket.example.com/signed", nil)
			},
			validateJob: func(t *testing.T, job workers.ExportJob) {
				assert.Equal(t, workers.JobCompleted, job.Status)
				assert.Equal(t, "https://bucket.example.com/signed", job.URL)
				assert.Contains(t, job.Key, "job-1")
				assert.Empty(t, job.Error)
			},
		},
		{
			name:    "uploads_xlsx",
			payload: workers.ExportPayload{JobID: "job-2", Format: export.FormatXLSX, Data: dataset()},
			setupMocks: func(storage *mocks.MockFileStorage) {
				storage.EXPECT().
					Upload(gomock.Any(), gomock.Any(), gomock.Any(), export.ContentTypeXLSX).
					Return("", nil)
				storage.EXPECT().
					GetPresignedURL(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://bucket.example.com/x", nil)
			},
			validateJob: func(t *testing.T, job workers.ExportJob) {
				assert.Equal(t, workers.JobCompleted, job.Status)
				assert.True(t, strings.HasSuffix(job.Key, ".xlsx"))
			},
		},
		{
			name:          "upload_failure_is_retried",
			payload:       workers.ExportPayload{JobID: "job-3", Format: export.FormatJSON, Data: dataset()},
			expectedError: true,
			setupMocks: func(storage *mocks.MockFileStorage) {
				storage.EXPECT().
					Upload(gomock.Any(), gomock.Any(), gomock.Any(), export.ContentTypeJSON).
					Return("", errors.New("bucket unavailable"))
			},
			validateJob: func(t *testing.T, job workers.ExportJob) {
				assert.Equal(t, workers.JobFailed, job.Status)
				assert.Contains(t, job.Error, "bucket unavailable")
			},
		},
		{
			name:          "unknown_kind_is_not_retried",
			payload:       workers.ExportPayload{JobID: "job-4", Format: export.FormatCSV, Kind: "lucro", Data: dataset()},
			expectedError: true,
			skipRetry:     true,
			setupMocks:    func(*mocks.MockFileStorage) {},
			validateJob: func(t *testing.T, job workers.ExportJob) {
				assert.Equal(t, workers.JobFailed, job.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			storage := mocks.NewMockFileStorage(ctrl)
			tt.setupMocks(storage)

			r := helpers.SetupTestRedis(t)
			cache := redis_a.NewCache(r.Client, time.Hour, helpers.TestLogger())
			cfg := helpers.LoadTestConfig().Export

			processor := workers.NewExportProcessor(storage, cache, cfg, helpers.TestLogger())
			err := processor.ProcessExport(context.Background(), exportTask(t, tt.payload))

			if tt.expectedError {
				require.Error(t, err)
				assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
			} else {
				require.NoError(t, err)
			}

			var job workers.ExportJob
			require.NoError(t, cache.Get(context.Background(), workers.JobKey(tt.payload.JobID), &job))
			assert.Equal(t, tt.payload.JobID, job.ID)
			tt.validateJob(t, job)

			ttl := r.Server.TTL(workers.JobKey(tt.payload.JobID))
			assert.Equal(t, cfg.JobTTL, ttl)
		})
	}
}

func TestExportProcessor_KeepsQueuedCreatedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockFileStorage(ctrl)
	storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)
	storage.EXPECT().GetPresignedURL(gomock.Any(), gomock.Any(), gomock.Any()).Return("u", nil)

	r := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(r.Client, time.Hour, helpers.TestLogger())

	queuedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, cache.Set(context.Background(), workers.JobKey("job-9"), workers.ExportJob{
		ID: "job-9", Status: workers.JobQueued, Format: export.FormatJSON, CreatedAt: queuedAt,
	}))

	processor := workers.NewExportProcessor(storage, cache, helpers.LoadTestConfig().Export, helpers.TestLogger())
	require.NoError(t, processor.ProcessExport(context.Background(),
		exportTask(t, workers.ExportPayload{JobID: "job-9", Format: export.FormatJSON, Data: dataset()})))

	var job workers.ExportJob
	require.NoError(t, cache.Get(context.Background(), workers.JobKey("job-9"), &job))
	assert.True(t, queuedAt.Equal(job.CreatedAt))
	assert.Equal(t, workers.JobCompleted, job.Status)
}

func TestExportProcessor_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	processor := workers.NewExportProcessor(
		mocks.NewMockFileStorage(ctrl),
		mocks.NewMockCacheRepository(ctrl),
		helpers.LoadTestConfig().Export,
		helpers.TestLogger(),
	)

	err := processor.ProcessExport(context.Background(), asynq.NewTask(workers.TypeExportReport, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	b, _ := json.Marshal(workers.ExportPayload{Format: export.FormatCSV})
	err = processor.ProcessExport(context.Background(), asynq.NewTask(workers.TypeExportReport, b))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestCleanupProcessor_CleanupExports(t *testing.T) {
	now := time.Now()
	objects := []ports.StoredObject{
		{Key: "exports/a/old.csv", LastModified: now.Add(-48 * time.Hour)},
		{Key: "exports/b/recent.csv", LastModified: now.Add(-time.Hour)},
		{Key: "exports/c/older.xlsx", LastModified: now.Add(-72 * time.Hour)},
	}

	t.Run("deletes_expired_objects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockFileStorage(ctrl)
		storage.EXPECT().List(gomock.Any(), "exports/").Return(objects, nil)
		storage.EXPECT().Delete(gomock.Any(), "exports/a/old.csv").Return(nil)
		storage.EXPECT().Delete(gomock.Any(), "exports/c/older.xlsx").Return(nil)

		processor := workers.NewCleanupProcessor(storage, helpers.LoadTestConfig().Export, helpers.TestLogger())
		assert.NoError(t, processor.CleanupExports(context.Background(), workers.NewCleanupTask()))
	})

	t.Run("reports_failed_deletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockFileStorage(ctrl)
		storage.EXPECT().List(gomock.Any(), gomock.Any()).Return(objects, nil)
		storage.EXPECT().Delete(gomock.Any(), "exports/a/old.csv").Return(errors.New("denied"))
		storage.EXPECT().Delete(gomock.Any(), "exports/c/older.xlsx").Return(nil)

		processor := workers.NewCleanupProcessor(storage, helpers.LoadTestConfig().Export, helpers.TestLogger())
		err := processor.CleanupExports(context.Background(), workers.NewCleanupTask())
		assert.ErrorContains(t, err, "failed to delete 1 exports")
	})

	t.Run("list_failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockFileStorage(ctrl)
		storage.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		processor := workers.NewCleanupProcessor(storage, helpers.LoadTestConfig().Export, helpers.TestLogger())
		assert.Error(t, processor.CleanupExports(context.Background(), workers.NewCleanupTask()))
	})
}
