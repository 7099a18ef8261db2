// Package bootstrap wires configuration, infrastructure and the web server
// into a running process.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/learnsphere/learnsphere-ui/config"
)

// InitLogger installs a JSON logger on stdout as the process default.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateConfig rejects combinations the server cannot start with.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory, config.StorageBackendRedis, config.StorageBackendPostgres:
	default:
		return fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == config.StorageBackendMemory && !cfg.IsDev {
		slog.Warn("memory storage loses every session on restart; use redis or postgres in production")
	}
	return nil
}
