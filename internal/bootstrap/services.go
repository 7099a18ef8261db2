package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/observability/metrics"
)

const shutdownWaitTimeout = 10 * time.Second

// RunConfig carries what Run needs beyond the environment.
type RunConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
	// Signals overrides the shutdown signal source (tests).
	Signals <-chan os.Signal
}

type backgroundHandle struct {
	name string
	done <-chan struct{}
}

// Run builds storage, starts the web server and the purge loop, then blocks
// until a shutdown signal arrives or a component fails.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := ValidateConfig(cfg.Config); err != nil {
		return err
	}

	infra, err := BuildStorage(ctx, cfg.Config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := infra.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close storage failed", "error", cerr)
		}
	}()

	m := metrics.New()
	handler, err := BuildHTTPHandler(&HTTPServerConfig{
		Config:  cfg.Config,
		Storage: infra.Storage,
		Metrics: m,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	server := NewHTTPServer(handler, cfg.Config.HTTP.Addr)
	if err := StartHTTPServer(logger, server, errCh); err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}

	var backgrounds []backgroundHandle
	if infra.Purger != nil && cfg.Config.Storage.PurgeInterval > 0 {
		h, err := startPurge(serviceCtx, infra.Purger, cfg.Config.Storage.PurgeInterval, m, logger, errCh)
		if err != nil {
			return errors.Join(err, ShutdownHTTPServer(ctx, server, logger))
		}
		backgrounds = append(backgrounds, h)
	}

	signals := cfg.Signals
	if signals == nil {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)
		signals = quit
	}

	return waitForShutdown(shutdownConfig{
		ctx:         ctx,
		cancel:      cancel,
		signals:     signals,
		errCh:       errCh,
		httpServer:  server,
		logger:      logger,
		backgrounds: backgrounds,
	})
}

func startPurge(
	ctx context.Context,
	p Purger,
	interval time.Duration,
	obs PurgeObserver,
	logger *slog.Logger,
	errCh chan<- error,
) (backgroundHandle, error) {
	runner, err := NewPurgeRunner(PurgeRunnerOptions{
		Purger:   p,
		Interval: interval,
		Observer: obs,
		Logger:   logger,
	})
	if err != nil {
		return backgroundHandle{}, fmt.Errorf("create purge runner: %w", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if runErr := runner.Run(ctx); runErr != nil {
			errCh <- fmt.Errorf("storage purge: %w", runErr)
		}
	}()
	return backgroundHandle{name: "storage purge", done: done}, nil
}

type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	signals     <-chan os.Signal
	errCh       <-chan error
	httpServer  *http.Server
	logger      *slog.Logger
	backgrounds []backgroundHandle
}

func waitForShutdown(cfg shutdownConfig) error {
	select {
	case sig := <-cfg.signals:
		cfg.logger.Info("shutting down", "signal", fmt.Sprint(sig))
		cfg.cancel()
		return gracefulStop(cfg)
	case <-cfg.ctx.Done():
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

func gracefulStop(cfg shutdownConfig) error {
	// The parent context may already be done; draining gets its own budget.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(cfg.ctx), shutdownWaitTimeout)
	defer cancel()

	if err := ShutdownHTTPServer(shutdownCtx, cfg.httpServer, cfg.logger); err != nil {
		return err
	}
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}
	return nil
}

func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
