// internal/app/app.go

// Package app assembles the synchronizing store and its adapters from
// configuration. It is shared by the api, worker and retificactl binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/retifica-be/internal/adapters/db"
	redis_a "github.com/ammerola/retifica-be/internal/adapters/redis_adapter"
	"github.com/ammerola/retifica-be/internal/adapters/sqlite"
	"github.com/ammerola/retifica-be/internal/adapters/storage"
	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/core/services"
	"github.com/ammerola/retifica-be/internal/pkg/catalog"
	"github.com/ammerola/retifica-be/internal/pkg/config"
)

// Stack is an initialized store together with the resources it owns.
type Stack struct {
	Store *services.SyncStore
	// Database is nil when the remote is disabled or was unreachable at start.
	Database *db.Database
	Local    ports.LocalCache

	logger *slog.Logger
}

// Close releases the local cache and the database pool.
func (s *Stack) Close() {
	if s.Local != nil {
		if err := s.Local.Close(); err != nil {
			s.logger.Error("failed to close local cache", slog.String("error", err.Error()))
		}
	}
	if s.Database != nil {
		s.Database.Close()
	}
}

// DatabaseConfig maps the remote section of cfg onto the adapter config.
func DatabaseConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}
}

// MigrationConfig returns the golang-migrate settings for the remote.
func MigrationConfig(cfg *config.Config) *db.MigrationConfig {
	return &db.MigrationConfig{
		DatabaseURL: DatabaseConfig(cfg).URL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}
}

// NewRedisClient builds a client from the redis section of cfg. The
// connection is not checked.
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
}

// OpenLocalCache opens the snapshot cache selected by LOCAL_CACHE_DRIVER.
// redisClient is only used by the redis driver.
func OpenLocalCache(ctx context.Context, cfg *config.Config, redisClient redis.UniversalClient, logger *slog.Logger) (ports.LocalCache, error) {
	switch cfg.LocalCache.Driver {
	case config.LocalDriverSQLite:
		cache, err := sqlite.Open(cfg.LocalCache.Path, logger)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case config.LocalDriverRedis:
		if redisClient == nil {
			return nil, errors.New("redis local cache requires a redis client")
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return redis_a.NewSnapshotCache(redisClient, cfg.LocalCache.RedisNamespace, logger), nil
	}
	return nil, fmt.Errorf("unknown local cache driver %q", cfg.LocalCache.Driver)
}

// NewStack opens the remote and local adapters and initializes the store.
// An unreachable remote is not an error: the store starts offline. A remote
// without its tables leaves the store in setup-required mode, which is
// logged and reported by the status endpoints.
func NewStack(ctx context.Context, cfg *config.Config, redisClient redis.UniversalClient, logger *slog.Logger) (*Stack, error) {
	stack := &Stack{logger: logger}

	cat, err := catalog.Load(cfg.App.CatalogFile)
	if err != nil {
		return nil, err
	}

	local, err := OpenLocalCache(ctx, cfg, redisClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}
	stack.Local = local

	var remote ports.RemoteStore
	if cfg.Database.Enabled {
		dbCfg := DatabaseConfig(cfg)
		env := dbCfg.Environment()
		env.LocalDriver = cfg.LocalCache.Driver

		database, err := db.NewDatabase(ctx, dbCfg, logger)
		if err != nil {
			logger.WarnContext(ctx, "remote database unreachable",
				slog.String("host", cfg.Database.Host),
				slog.String("error", err.Error()))
			// a nil Database probes as unavailable
			remote = db.NewRemoteRepository(nil, env, cfg.Database.RequestTimeout, logger)
		} else {
			stack.Database = database
			if cfg.Database.AutoMigrate {
				if err := db.RunMigrationsWithRetry(ctx, MigrationConfig(cfg), logger, 3); err != nil {
					logger.WarnContext(ctx, "failed to run migrations", slog.String("error", err.Error()))
				}
			}
			remote = db.NewRemoteRepository(database, env, cfg.Database.RequestTimeout, logger)
		}
	}

	stack.Store = services.NewSyncStore(remote, local, logger,
		services.WithCatalog(cat),
		services.WithLocalDriver(cfg.LocalCache.Driver))

	if err := stack.Store.Initialize(ctx); err != nil {
		if !errors.Is(err, domain.ErrSetupRequired) {
			stack.Close()
			return nil, fmt.Errorf("failed to initialize store: %w", err)
		}
		logger.ErrorContext(ctx, "remote tables missing, run migrations",
			slog.String("command", "retificactl migrate up"))
	}

	return stack, nil
}

// NewFileStorage returns S3 storage when a bucket is configured and local
// disk storage otherwise.
func NewFileStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.FileStorage, error) {
	if cfg.AWS.S3Bucket == "" {
		local, err := storage.NewLocalStorage(cfg.Export.LocalDir, logger)
		if err != nil {
			return nil, err
		}
		return local, nil
	}
	s3, err := storage.NewS3Storage(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, logger)
	if err != nil {
		return nil, err
	}
	return s3, nil
}
