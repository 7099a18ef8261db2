package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	learnsphere "github.com/learnsphere/learnsphere-ui"
	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/observability/metrics"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
	"github.com/learnsphere/learnsphere-ui/internal/session"
)

const staticPathFromRoot = "frontend/static"

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Storage  ports.StorageProvider
	Backends BackendFactory
	// Metrics is optional; nil disables /metrics and all instrumentation.
	Metrics     *metrics.Metrics
	MetricsPath string
	Auth        config.AuthConfig

	CookieDomain string
	CookieMaxAge time.Duration
	// Compression is optional; nil serves uncompressed responses.
	Compression *CompressionConfig

	// TemplateFS and StaticFS override the embedded assets (tests, tooling).
	TemplateFS fs.FS
	StaticFS   fs.FS
	Now        func() time.Time

	IsDev  bool // serve assets from disk and reparse templates per request
	Logger *slog.Logger
}

// NewRouter wires the page handlers behind the middleware chain:
// logging, recovery and compression for everything; CSRF, the per-request
// session and the route guard for pages.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if services.Storage == nil || services.Backends == nil {
		return nil, errors.New("router requires storage and a backend factory")
	}

	templateFS, staticFS, err := resolveAssets(services)
	if err != nil {
		return nil, err
	}
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     logger,
		Now:        services.Now,
	})
	if err != nil {
		return nil, err
	}

	h := &Handlers{
		T:                 renderer,
		MinPasswordLength: services.Auth.MinPasswordLength,
		Logger:            logger,
	}

	var (
		sessionObs session.Observer
		guardObs   GuardObserver
		httpObs    HTTPObserver
		onLimited  func()
	)
	if m := services.Metrics; m != nil {
		sessionObs, guardObs, httpObs, onLimited = m, m, m, m.RateLimited
	}

	app := http.NewServeMux()
	registerPageRoutes(app, h, RateLimit(RateLimitConfig{
		PerMinute: services.Auth.LoginRatePerMinute,
		Burst:     services.Auth.LoginBurst,
		OnLimited: onLimited,
	}))

	pages := chain(capturePattern(app),
		CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain}),
		WithSession(SessionConfig{
			Storage:      services.Storage,
			Backends:     services.Backends,
			Observer:     sessionObs,
			CookieDomain: services.CookieDomain,
			CookieMaxAge: services.CookieMaxAge,
			Logger:       logger,
		}),
		Guard(guardObs),
	)

	root := http.NewServeMux()
	root.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	root.HandleFunc("GET /healthz", healthHandler)
	root.HandleFunc("HEAD /healthz", healthHandler)
	if services.Metrics != nil {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		root.Handle("GET "+path, services.Metrics.Handler())
	}
	root.Handle("/", pages)

	outer := []func(http.Handler) http.Handler{Logging(logger, httpObs), Recover(logger)}
	if services.Compression != nil {
		cc := *services.Compression
		if cc.Logger == nil {
			cc.Logger = logger
		}
		outer = append(outer, Compression(cc))
	}
	return chain(capturePattern(root), outer...), nil
}

func registerPageRoutes(mux *http.ServeMux, h *Handlers, limit func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.Handle("POST /login", limit(http.HandlerFunc(h.Login)))
	mux.HandleFunc("GET /register", h.RegisterPage)
	mux.Handle("POST /register", limit(http.HandlerFunc(h.Register)))
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /unauthorized", h.Unauthorized)
	mux.HandleFunc("GET /student/dashboard", h.StudentDashboard)
	mux.HandleFunc("POST /student/enroll", h.Enroll)
	mux.HandleFunc("GET /instructor/dashboard", h.InstructorDashboard)
	mux.HandleFunc("GET /auth/status", h.AuthStatus)
	mux.HandleFunc("/", h.NotFound)
}

// chain applies middleware so the first one listed is the outermost.
func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// resolveAssets picks explicit overrides first, then disk in dev mode, then
// the embedded copies.
func resolveAssets(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if services.IsDev {
		if templateFS == nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		if staticFS == nil {
			staticFS = os.DirFS(staticPathFromRoot)
		}
	}
	if templateFS == nil {
		sub, err := fs.Sub(learnsphere.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			return nil, nil, fmt.Errorf("embedded templates: %w", err)
		}
		templateFS = sub
	}
	if staticFS == nil {
		sub, err := fs.Sub(learnsphere.StaticFS, staticPathFromRoot)
		if err != nil {
			return nil, nil, fmt.Errorf("embedded static assets: %w", err)
		}
		staticFS = sub
	}
	return templateFS, staticFS, nil
}
