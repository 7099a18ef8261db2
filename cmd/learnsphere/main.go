// Command learnsphere serves the LearnSphere web front end.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logStartupInfo(ctx, logger, &cfg)

	return bootstrap.Run(ctx, &bootstrap.RunConfig{Config: &cfg, Logger: logger})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting learnsphere",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"storage_backend", string(cfg.Storage.Backend),
		"metrics", cfg.Observability.Metrics.IsEnabled(),
		"dev", cfg.IsDev)
}
