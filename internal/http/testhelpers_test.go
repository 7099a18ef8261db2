package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/adapters/memstore"
	"github.com/learnsphere/learnsphere-ui/internal/apiclient"
	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
	"github.com/learnsphere/learnsphere-ui/internal/mocks"
	"github.com/learnsphere/learnsphere-ui/internal/observability/metrics"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
	"github.com/learnsphere/learnsphere-ui/internal/session"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the
// test if the templates are not on disk.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Now:        func() time.Time { return testNow },
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// harness runs the full router against gomock backends and in-memory storage.
type harness struct {
	t       *testing.T
	server  *httptest.Server
	client  *http.Client
	storage *memstore.Provider
	auth    *mocks.MockAuthAPI
	courses *mocks.MockCourseAPI
	metrics *metrics.Metrics

	mu        sync.Mutex
	onUnauth  ports.UnauthorizedHandler
	lastCreds *apiclient.Credentials
}

type harnessOption func(*RouterServices)

func withAuthConfig(cfg config.AuthConfig) harnessOption {
	return func(s *RouterServices) { s.Auth = cfg }
}

func withCompression() harnessOption {
	return func(s *RouterServices) { s.Compression = &CompressionConfig{Level: 5} }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
	}

	ctrl := gomock.NewController(t)
	h := &harness{
		t:       t,
		storage: memstore.NewProvider(),
		auth:    mocks.NewMockAuthAPI(ctrl),
		courses: mocks.NewMockCourseAPI(ctrl),
		metrics: metrics.New(),
	}

	services := RouterServices{
		Storage:     h.storage,
		Backends:    h.backend,
		Metrics:     h.metrics,
		MetricsPath: "/metrics",
		Auth:        config.AuthConfig{LoginRatePerMinute: 600, LoginBurst: 100, MinPasswordLength: 6},
		TemplateFS:  os.DirFS(TemplatePathFromTest),
		StaticFS:    os.DirFS("../../frontend/static"),
		Now:         func() time.Time { return testNow },
		Logger:      discardLogger(),
	}
	for _, opt := range opts {
		opt(&services)
	}
	router, err := NewRouter(services)
	require.NoError(t, err)

	h.server = httptest.NewServer(router)
	t.Cleanup(h.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	h.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return h
}

// backend is the BackendFactory: mocks for the API, real credentials for the
// header, and a hook that lets tests fire the 401 reaction.
func (h *harness) backend() Backend {
	creds := apiclient.NewCredentials()
	h.mu.Lock()
	h.lastCreds = creds
	h.mu.Unlock()
	return Backend{
		Auth:    h.auth,
		Courses: h.courses,
		Bearer:  creds,
		OnUnauthorized: func(fn ports.UnauthorizedHandler) {
			h.mu.Lock()
			h.onUnauth = fn
			h.mu.Unlock()
		},
	}
}

// unauthorized does what the apiclient does on a 401: react, then fail.
func (h *harness) unauthorized(ctx context.Context) error {
	h.mu.Lock()
	fn := h.onUnauth
	h.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
	return apperrors.FromStatus(http.StatusUnauthorized, "")
}

func (h *harness) bearer() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lastCreds == nil {
		return ""
	}
	return h.lastCreds.Bearer()
}

func (h *harness) url(path string) string { return h.server.URL + path }

func (h *harness) cookie(name string) string {
	u, _ := url.Parse(h.server.URL)
	for _, c := range h.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// signIn plants a persisted session for a fresh client id, as a previous
// visit would have left it.
func (h *harness) signIn(user auth.User, token string) string {
	h.t.Helper()
	clientID := uuid.NewString()
	u, _ := url.Parse(h.server.URL)
	h.client.Jar.SetCookies(u, []*http.Cookie{{Name: ClientCookieName, Value: clientID, Path: "/"}})

	raw, err := json.Marshal(user)
	require.NoError(h.t, err)
	ns := h.storage.Namespace(clientID)
	require.NoError(h.t, ns.Set(context.Background(), session.TokenKey, token))
	require.NoError(h.t, ns.Set(context.Background(), session.UserKey, string(raw)))
	return clientID
}

func (h *harness) persisted(clientID, key string) (string, bool) {
	h.t.Helper()
	v, ok, err := h.storage.Namespace(clientID).Get(context.Background(), key)
	require.NoError(h.t, err)
	return v, ok
}

func (h *harness) get(path string) (*http.Response, string) {
	h.t.Helper()
	req, err := http.NewRequest(http.MethodGet, h.url(path), nil)
	require.NoError(h.t, err)
	return h.do(req)
}

// csrfToken makes sure the jar holds a token. The access denied page is
// the cheapest page behind the CSRF middleware.
func (h *harness) csrfToken() string {
	h.t.Helper()
	if tok := h.cookie(DefaultCSRFCookieName); tok != "" {
		return tok
	}
	h.get("/unauthorized")
	tok := h.cookie(DefaultCSRFCookieName)
	require.NotEmpty(h.t, tok, "csrf cookie not issued")
	return tok
}

func (h *harness) postForm(path string, form url.Values) (*http.Response, string) {
	h.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, h.csrfToken())
	req, err := http.NewRequest(http.MethodPost, h.url(path), strings.NewReader(form.Encode()))
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func (h *harness) do(req *http.Request) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.client.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp, string(body)
}

func (h *harness) scrape() string {
	h.t.Helper()
	_, body := h.get("/metrics")
	return body
}

func student() auth.User {
	return auth.User{ID: "7", Email: "ada@example.com", Role: auth.RoleStudent, FirstName: "Ada", LastName: "Lovelace"}
}

func instructor() auth.User {
	return auth.User{ID: "9", Email: "grace@example.com", Role: auth.RoleInstructor, FirstName: "Grace", LastName: "Hopper"}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
