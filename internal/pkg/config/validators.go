// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"strings"
)

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("%w: server port", ErrMissingRequiredConfig)
	}

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" {
			return fmt.Errorf("%w: database host", ErrMissingRequiredConfig)
		}
		if cfg.Database.Name == "" {
			return fmt.Errorf("%w: database name", ErrMissingRequiredConfig)
		}
		if cfg.Database.MaxConnections < cfg.Database.MinConnections {
			return fmt.Errorf("database max_connections must be >= min_connections")
		}
	}

	switch cfg.LocalCache.Driver {
	case LocalDriverSQLite:
		if cfg.LocalCache.Path == "" {
			return fmt.Errorf("%w: local cache path", ErrMissingRequiredConfig)
		}
	case LocalDriverRedis:
		if cfg.LocalCache.RedisNamespace == "" {
			return fmt.Errorf("%w: local cache namespace", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("unknown local cache driver %q", cfg.LocalCache.Driver)
	}

	if cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool_size must be positive")
	}

	if cfg.Security.DeleteSecret == "" {
		return fmt.Errorf("%w: delete secret", ErrMissingRequiredConfig)
	}

	if cfg.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("rate_limit_requests must be positive")
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	if strings.HasPrefix(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}

	if cfg.Database.Enabled && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	if cfg.Security.DeleteSecret == defaultDeleteSecret {
		return fmt.Errorf("default delete secret cannot be used in production")
	}

	if len(cfg.Security.DeleteSecret) < 8 {
		return fmt.Errorf("delete secret must be at least 8 characters")
	}

	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("secure headers must be enabled in production")
	}

	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin (*) not allowed in production")
		}
	}

	return nil
}
