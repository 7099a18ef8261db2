package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/apiclient"
	httpx "github.com/learnsphere/learnsphere-ui/internal/http"
	"github.com/learnsphere/learnsphere-ui/internal/observability/metrics"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config  *config.AppConfig
	Storage ports.StorageProvider
	// Metrics is optional. When nil, or when metrics are disabled in config,
	// nothing is instrumented.
	Metrics *metrics.Metrics
	// Transport overrides the backend transport (tests).
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// BuildHTTPHandler wires the router, its backend factory and the optional
// instrumentation.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	m := cfg.Metrics
	if !appCfg.Observability.Metrics.IsEnabled() {
		m = nil
	}

	apiOpts := apiclient.OptionsFromConfig(appCfg.API)
	apiOpts.Transport = cfg.Transport
	apiOpts.Logger = logger
	if err := apiOpts.Validate(); err != nil {
		return nil, err
	}
	if m != nil {
		apiOpts.Recorder = m
	}

	services := httpx.RouterServices{
		Storage:      cfg.Storage,
		Backends:     httpx.APIClientFactory(apiOpts),
		Metrics:      m,
		MetricsPath:  appCfg.Observability.Metrics.Path,
		Auth:         appCfg.Auth,
		CookieDomain: appCfg.HTTP.CookieDomain,
		CookieMaxAge: appCfg.Storage.TTL,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, Logger: logger}
	}

	return httpx.NewRouter(services)
}

// NewHTTPServer returns an unstarted server with the usual timeouts.
func NewHTTPServer(handler http.Handler, addr string) *http.Server {
	if addr == "" {
		addr = ":3000"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// StartHTTPServer listens on server.Addr and serves in the background.
// Listen errors are returned directly; serve errors go to errCh.
func StartHTTPServer(logger *slog.Logger, server *http.Server, errCh chan<- error) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	go func() {
		logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if serveErr := server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()
	return nil
}

// ShutdownHTTPServer drains in-flight requests until ctx expires.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	logger.Info("shutting down HTTP server")
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
