// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	redis_a "github.com/ammerola/retifica-be/internal/adapters/redis_adapter"
	"github.com/ammerola/retifica-be/internal/app"
	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/core/services"
	"github.com/ammerola/retifica-be/internal/handlers"
	"github.com/ammerola/retifica-be/internal/handlers/middleware"
	"github.com/ammerola/retifica-be/internal/pkg/config"
	"github.com/ammerola/retifica-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("info", "json").Logger

	slogger.Info("starting retifica backend",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
		slog.Bool("remote_enabled", cfg.Database.Enabled),
		slog.String("local_cache", cfg.LocalCache.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(ctx, cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case <-ctx.Done():
		slogger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		// event streams block Shutdown until they end
		deps.events.Close()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	stack          *app.Stack
	redisClient    *redis.Client
	redisCache     ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	events         *handlers.EventHub
	router         *handlers.Router
	unsubscribe    func()
}

func (d *dependencies) cleanup() {
	if d.unsubscribe != nil {
		d.unsubscribe()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.stack != nil {
		d.stack.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	// Redis backs export jobs and, optionally, the local cache. The API keeps
	// serving the store without it.
	redisClient := app.NewRedisClient(cfg)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, export jobs disabled",
			slog.String("addr", cfg.GetRedisAddr()),
			slog.String("error", err.Error()))
		redisClient.Close()
		redisClient = nil
	}

	var universal redis.UniversalClient
	if redisClient != nil {
		universal = redisClient
		deps.redisClient = redisClient
	}

	stack, err := app.NewStack(ctx, cfg, universal, logger)
	if err != nil {
		deps.cleanup()
		return nil, err
	}
	deps.stack = stack
	store := stack.Store

	deps.unsubscribe = store.Subscribe(func() {
		status := store.Status()
		logger.Debug("store changed",
			slog.String("mode", string(status.Mode)),
			slog.Int("batches", status.Batches),
			slog.Int("engines", status.Engines))
	})

	var enqueuer ports.TaskEnqueuer
	if redisClient != nil {
		deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

		asynqRedisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddr,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		}
		deps.asynqClient = asynq.NewClient(asynqRedisOpt)
		deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)
		enqueuer = deps.asynqClient
	}

	// never hand a typed nil to an interface parameter
	var database ports.Database
	if stack.Database != nil {
		database = stack.Database
	}

	deps.events = handlers.NewEventHub(store, logger)
	deps.router = &handlers.Router{
		Health:         handlers.NewHealthHandler(store, database, universal, deps.asynqInspector, cfg, logger),
		Batches:        handlers.NewBatchHandler(store, logger),
		Engines:        handlers.NewEngineHandler(store, logger),
		Reports:        handlers.NewReportHandler(store, services.NewReportService(store, logger), logger),
		Export:         handlers.NewExportHandler(store, enqueuer, deps.redisCache, cfg.Export, logger),
		Events:         deps.events,
		DeleteSecret:   cfg.Security.DeleteSecret,
		RequestTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("all dependencies initialized successfully",
		slog.String("mode", string(store.Mode())))
	return deps, nil
}

func setupHTTPServer(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	deps.router.Register(mux)

	chain := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, middleware.RateLimit(ctx, cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration))
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	chain = append(chain, middleware.Compression)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
