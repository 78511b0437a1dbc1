// internal/pkg/config/config.go
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Local cache drivers.
const (
	LocalDriverSQLite = "sqlite"
	LocalDriverRedis  = "redis"
)

const defaultDeleteSecret = "retifica-dev-delete"

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Remote record store
	Database DatabaseConfig

	// Durable local snapshot
	LocalCache LocalCacheConfig

	// Redis
	Redis RedisConfig

	// Asynq
	Asynq AsynqConfig

	// AWS
	AWS AWSConfig

	// Report exports
	Export ExportConfig

	// Security
	Security SecurityConfig

	// Server
	Server ServerConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
	CatalogFile string
}

// DatabaseConfig holds the remote PostgreSQL configuration. The remote store is
// only used when Enabled is set.
type DatabaseConfig struct {
	Enabled            bool
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	RequestTimeout     time.Duration
	EnableQueryLogging bool
	MigrationPath      string
	AutoMigrate        bool
}

// LocalCacheConfig selects and configures the local snapshot backend.
type LocalCacheConfig struct {
	Driver         string // sqlite, redis
	Path           string
	RedisNamespace string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	TTL          time.Duration
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	Queues          map[string]int // queue name -> priority
	StrictPriority  bool
	RetryMax        int
	ShutdownTimeout time.Duration
	CleanupCron     string
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
	SecretsName     string
}

// ExportConfig holds report export configuration
type ExportConfig struct {
	KeyPrefix  string
	LocalDir   string
	URLExpiry  time.Duration
	Retention  time.Duration
	JobTTL     time.Duration
	JobTimeout time.Duration
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	DeleteSecret      string
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	SecureHeaders     bool
	RequestIDHeader   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	GracefulTimeout time.Duration
}

// Load loads configuration from environment variables and, when CONFIG_FILE
// is set, from that file. Environment variables win over the file.
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		logger.Info("config file loaded", slog.String("file", v.ConfigFileUsed()))
	}

	cfg := build(source{v}, env)

	if cfg.AWS.SecretsName != "" {
		sm, err := NewAWSSecretsManager(cfg.AWS.Region, cfg.AWS.SecretsName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create secrets manager: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := cfg.ApplySecrets(ctx, sm); err != nil {
			return nil, fmt.Errorf("failed to apply secrets: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func build(s source, env string) *Config {
	redisHost := s.getEnv("REDIS_HOST", "localhost")
	redisPort := s.getEnv("REDIS_PORT", "6379")

	return &Config{
		App: AppConfig{
			Name:        s.getEnv("APP_NAME", "retifica-api"),
			Environment: env,
			Version:     s.getEnv("APP_VERSION", "dev"),
			LogLevel:    s.getEnv("LOG_LEVEL", "info"),
			LogFormat:   s.getEnv("LOG_FORMAT", "json"),
			Debug:       s.getBoolEnv("APP_DEBUG", env == "development"),
			CatalogFile: s.getEnv("CATALOG_FILE", ""),
		},
		Database: DatabaseConfig{
			Enabled:            s.getBoolEnv("REMOTE_ENABLED", false),
			Host:               s.getEnv("DB_HOST", "localhost"),
			Port:               s.getEnv("DB_PORT", "5432"),
			User:               s.getEnv("DB_USER", "retifica"),
			Password:           s.getEnv("DB_PASSWORD", "retifica_dev"),
			Name:               s.getEnv("DB_NAME", "retifica"),
			SSLMode:            s.getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:     int32(s.getIntEnv("DB_MAX_CONNECTIONS", 10)),
			MinConnections:     int32(s.getIntEnv("DB_MIN_CONNECTIONS", 1)),
			MaxConnLifetime:    s.getDurationEnv("DB_CONNECTION_LIFETIME", time.Hour),
			MaxConnIdleTime:    s.getDurationEnv("DB_IDLE_TIME", 30*time.Minute),
			HealthCheckPeriod:  s.getDurationEnv("DB_HEALTH_CHECK_PERIOD", time.Minute),
			ConnectTimeout:     s.getDurationEnv("DB_CONNECT_TIMEOUT", 5*time.Second),
			RequestTimeout:     s.getDurationEnv("REMOTE_TIMEOUT", 10*time.Second),
			EnableQueryLogging: s.getBoolEnv("DB_QUERY_LOGGING", false),
			MigrationPath:      s.getEnv("DB_MIGRATION_PATH", ""),
			AutoMigrate:        s.getBoolEnv("DB_AUTO_MIGRATE", env == "development"),
		},
		LocalCache: LocalCacheConfig{
			Driver:         s.getEnv("LOCAL_CACHE_DRIVER", LocalDriverSQLite),
			Path:           s.getEnv("LOCAL_CACHE_PATH", "retifica-cache.db"),
			RedisNamespace: s.getEnv("LOCAL_CACHE_NAMESPACE", "retifica"),
		},
		Redis: RedisConfig{
			Host:         redisHost,
			Port:         redisPort,
			Password:     s.getEnv("REDIS_PASSWORD", ""),
			DB:           s.getIntEnv("REDIS_DB", 0),
			MaxRetries:   s.getIntEnv("REDIS_MAX_RETRIES", 3),
			DialTimeout:  s.getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  s.getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: s.getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolSize:     s.getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: s.getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			TTL:          s.getDurationEnv("REDIS_TTL", time.Hour),
		},
		Asynq: AsynqConfig{
			RedisAddr:       fmt.Sprintf("%s:%s", redisHost, redisPort),
			RedisPassword:   s.getEnv("REDIS_PASSWORD", ""),
			RedisDB:         s.getIntEnv("ASYNQ_REDIS_DB", 0),
			Concurrency:     s.getIntEnv("ASYNQ_CONCURRENCY", 4),
			Queues:          parseQueues(s.getEnv("ASYNQ_QUEUES", "default:3,low:1")),
			StrictPriority:  s.getBoolEnv("ASYNQ_STRICT_PRIORITY", false),
			RetryMax:        s.getIntEnv("ASYNQ_RETRY_MAX", 3),
			ShutdownTimeout: s.getDurationEnv("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second),
			CleanupCron:     s.getEnv("ASYNQ_CLEANUP_CRON", "@every 1h"),
		},
		AWS: AWSConfig{
			Region:          s.getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     s.getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: s.getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        s.getEnv("AWS_S3_BUCKET", ""),
			S3Endpoint:      s.getEnv("AWS_S3_ENDPOINT", ""),
			UsePathStyle:    s.getBoolEnv("AWS_S3_PATH_STYLE", env == "development"),
			SecretsName:     s.getEnv("AWS_SECRETS_NAME", ""),
		},
		Export: ExportConfig{
			KeyPrefix:  s.getEnv("EXPORT_KEY_PREFIX", "exports/"),
			LocalDir:   s.getEnv("EXPORT_LOCAL_DIR", "exports"),
			URLExpiry:  s.getDurationEnv("EXPORT_URL_EXPIRY", time.Hour),
			Retention:  s.getDurationEnv("EXPORT_RETENTION", 7*24*time.Hour),
			JobTTL:     s.getDurationEnv("EXPORT_JOB_TTL", 24*time.Hour),
			JobTimeout: s.getDurationEnv("EXPORT_JOB_TIMEOUT", 5*time.Minute),
		},
		Security: SecurityConfig{
			DeleteSecret:      s.getEnv("DELETE_SECRET", defaultDeleteSecret),
			RateLimitRequests: s.getIntEnv("RATE_LIMIT_REQUESTS", 100),
			RateLimitDuration: s.getDurationEnv("RATE_LIMIT_DURATION", time.Minute),
			AllowedOrigins:    s.getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),
			SecureHeaders:     s.getBoolEnv("SECURE_HEADERS", env == "production"),
			RequestIDHeader:   s.getEnv("REQUEST_ID_HEADER", "X-Request-ID"),
		},
		Server: ServerConfig{
			Host:            s.getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            s.getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     s.getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    s.getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     s.getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			MaxHeaderBytes:  s.getIntEnv("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			GracefulTimeout: s.getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
		},
	}
}

// ApplySecrets overrides the delete secret and database password with the
// values held by provider, when present.
func (c *Config) ApplySecrets(ctx context.Context, provider SecretsProvider) error {
	secrets, err := provider.GetSecrets(ctx, []string{"DELETE_SECRET", "DB_PASSWORD"})
	if err != nil {
		return err
	}
	if v, ok := secrets["DELETE_SECRET"]; ok && v != "" {
		c.Security.DeleteSecret = v
	}
	if v, ok := secrets["DB_PASSWORD"]; ok && v != "" {
		c.Database.Password = v
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := (&BasicValidator{}).Validate(c); err != nil {
		return err
	}
	if c.IsProduction() {
		return (&ProductionValidator{}).Validate(c)
	}
	return nil
}

// GetDatabaseURL returns the formatted database connection string
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns host:port of the Redis server
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// source reads keys through viper so that both the environment and the
// optional config file are consulted.
type source struct {
	v *viper.Viper
}

func (s source) lookup(key string) (string, bool) {
	if !s.v.IsSet(key) {
		return "", false
	}
	value := s.v.GetString(key)
	return value, value != ""
}

func (s source) getEnv(key, defaultValue string) string {
	if value, ok := s.lookup(key); ok {
		return value
	}
	return defaultValue
}

func (s source) getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := s.lookup(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func (s source) getIntEnv(key string, defaultValue int) int {
	if value, ok := s.lookup(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func (s source) getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, ok := s.lookup(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func (s source) getSliceEnv(key string, defaultValue []string) []string {
	if value, ok := s.lookup(key); ok {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func parseQueues(queuesStr string) map[string]int {
	queues := make(map[string]int)
	pairs := strings.Split(queuesStr, ",")
	for _, pair := range pairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			name := strings.TrimSpace(parts[0])
			priority, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err == nil {
				queues[name] = priority
			}
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}
