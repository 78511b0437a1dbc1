// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/retifica-be/internal/adapters/db"
	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestDB starts a PostgreSQL container and applies the embedded
// migrations. The test is skipped in -short mode or without Docker.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL container in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_retifica",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := db.DefaultConfig()
	dbConfig.Port = resource.GetPort("5432/tcp")
	dbConfig.User = "test"
	dbConfig.Password = "test"
	dbConfig.Database = "test_retifica"
	dbConfig.MaxConnections = 5
	dbConfig.EnableQueryLogging = testing.Verbose()

	var database *db.Database
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		var err error
		database, err = db.NewDatabase(context.Background(), dbConfig, TestLogger())
		return err
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	err = db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{
		DatabaseURL: dbConfig.URL(),
	}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates an in-memory Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		db.Close()
	})

	return mock, db
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Enabled:        false,
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_retifica",
			SSLMode:        "disable",
			MaxConnections: 5,
			MinConnections: 1,
			RequestTimeout: 2 * time.Second,
		},
		LocalCache: config.LocalCacheConfig{
			Driver:         config.LocalDriverSQLite,
			Path:           ":memory:",
			RedisNamespace: "test",
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Export: config.ExportConfig{
			KeyPrefix:  "exports/",
			URLExpiry:  time.Hour,
			Retention:  24 * time.Hour,
			JobTTL:     time.Hour,
			JobTimeout: time.Minute,
		},
		Security: config.SecurityConfig{
			DeleteSecret:      "test-delete-secret",
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestBatch creates a test batch
func CreateTestBatch(overrides ...func(*domain.Batch)) domain.Batch {
	batch := domain.Batch{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Name:        "Lote Janeiro",
		ClosureDate: domain.MustParseDate("2025-01-31"),
		CreatedAt:   time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC),
	}

	for _, override := range overrides {
		override(&batch)
	}

	return batch
}

// CreateTestEngine creates a test engine in batchID
func CreateTestEngine(batchID string, overrides ...func(*domain.Engine)) domain.Engine {
	engine := domain.Engine{
		ID:           uuid.Must(uuid.NewV7()).String(),
		BatchID:      batchID,
		VehicleModel: "Gol 1.6",
		EngineNumber: "AP-0001",
		Operator:     "João",
		Notes:        "Cliente aguardando",
		EntryDate:    domain.MustParseDate("2025-01-10"),
		Services: []domain.Service{
			domain.NewService(domain.ServiceSimpleRevision, decimal.RequireFromString("350.00"), ""),
			domain.NewService(domain.ServiceLabor, decimal.RequireFromString("120.50"), ""),
		},
		CreatedAt: time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC),
	}

	for _, override := range overrides {
		override(&engine)
	}

	return engine
}

// CreateTestEngines creates count engines in batchID with distinct numbers
// and totals
func CreateTestEngines(batchID string, count int) []domain.Engine {
	models := []string{"Gol 1.6", "Uno 1.0", "Palio 1.4", "Corsa 1.0"}

	engines := make([]domain.Engine, count)
	for i := 0; i < count; i++ {
		engines[i] = CreateTestEngine(batchID, func(e *domain.Engine) {
			e.EngineNumber = fmt.Sprintf("AP-%04d", i+1)
			e.VehicleModel = models[i%len(models)]
			e.Services = []domain.Service{
				domain.NewService(domain.ServiceLabor, decimal.NewFromInt(int64(100*(i+1))), ""),
			}
			e.CreatedAt = e.CreatedAt.Add(time.Duration(i) * time.Minute)
		})
	}

	return engines
}

// AdditionalPart builds a "Peças adicionais" service line
func AdditionalPart(name, amount string) domain.Service {
	return domain.NewService(domain.ServiceAdditionalParts, decimal.RequireFromString(amount), name)
}

// AssertBatchesEqual compares batches field by field
func AssertBatchesEqual(t *testing.T, expected, actual []domain.Batch) {
	t.Helper()

	require.Len(t, actual, len(expected))
	for i := range expected {
		require.Equal(t, expected[i].ID, actual[i].ID)
		require.Equal(t, expected[i].Name, actual[i].Name)
		require.Equal(t, expected[i].ClosureDate, actual[i].ClosureDate)
		require.True(t, expected[i].CreatedAt.Equal(actual[i].CreatedAt),
			"created_at %s != %s", expected[i].CreatedAt, actual[i].CreatedAt)
	}
}

// AssertEnginesEqual compares engines field by field, amounts by value
func AssertEnginesEqual(t *testing.T, expected, actual []domain.Engine) {
	t.Helper()

	require.Len(t, actual, len(expected))
	for i := range expected {
		AssertEngineEqual(t, expected[i], actual[i])
	}
}

// AssertEngineEqual compares two engines
func AssertEngineEqual(t *testing.T, expected, actual domain.Engine) {
	t.Helper()

	require.Equal(t, expected.ID, actual.ID)
	require.Equal(t, expected.BatchID, actual.BatchID)
	require.Equal(t, expected.VehicleModel, actual.VehicleModel)
	require.Equal(t, expected.EngineNumber, actual.EngineNumber)
	require.Equal(t, expected.Operator, actual.Operator)
	require.Equal(t, expected.Notes, actual.Notes)
	require.Equal(t, expected.EntryDate, actual.EntryDate)
	require.True(t, expected.CreatedAt.Equal(actual.CreatedAt),
		"created_at %s != %s", expected.CreatedAt, actual.CreatedAt)

	require.Len(t, actual.Services, len(expected.Services))
	for j := range expected.Services {
		require.Equal(t, expected.Services[j].Type, actual.Services[j].Type)
		require.True(t, expected.Services[j].Amount.Equal(actual.Services[j].Amount),
			"amount %s != %s", expected.Services[j].Amount, actual.Services[j].Amount)
		require.Equal(t, expected.Services[j].PartName(), actual.Services[j].PartName())
	}
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "TRUNCATE TABLE motores, lotes CASCADE")
	require.NoError(t, err, "Failed to truncate tables")
}
