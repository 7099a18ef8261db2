// Package apiclient talks to the learning-platform backend on behalf of one
// client session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/learnsphere/learnsphere-ui/config"
	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

const (
	maxBodyBytes = 4 << 20

	// errorMessagePath pulls a human message out of an error body.
	errorMessagePath = "not_null(message, error, data.message, errors[0].message)"
)

// Recorder observes backend calls. outcome is "ok" or an error code.
type Recorder interface {
	ObserveAPIRequest(endpoint, outcome string, d time.Duration)
}

// Options configures a Client. One Options value is shared by every client the
// process creates.
type Options struct {
	BaseURL      string
	AuthPrefix   string
	EnvelopePath string
	Timeout      time.Duration
	UserAgent    string

	// Transport is the shared base transport. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Jar keeps backend cookies between calls when set.
	Jar      http.CookieJar
	Recorder Recorder
	Logger   *slog.Logger
}

// OptionsFromConfig maps the API config section onto Options.
func OptionsFromConfig(cfg config.APIConfig) Options {
	return Options{
		BaseURL:      cfg.BaseURL,
		AuthPrefix:   cfg.AuthPrefix,
		EnvelopePath: cfg.EnvelopePath,
		Timeout:      cfg.Timeout,
		UserAgent:    "learnsphere-ui",
	}
}

// Validate checks the base URL and compiles the envelope expression.
func (o Options) Validate() error {
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return fmt.Errorf("parse api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url must be absolute http(s), got %q", o.BaseURL)
	}
	if strings.TrimSpace(o.EnvelopePath) == "" {
		return errors.New("envelope path is required")
	}
	if _, err := jmespath.Compile(o.EnvelopePath); err != nil {
		return fmt.Errorf("compile envelope path: %w", err)
	}
	return nil
}

// Client implements ports.AuthAPI and ports.CourseAPI.
type Client struct {
	baseURL    string
	authPrefix string
	envelope   string
	userAgent  string
	http       *http.Client
	creds      *Credentials
	onUnauth   atomic.Pointer[ports.UnauthorizedHandler]
	recorder   Recorder
	logger     *slog.Logger
}

var (
	_ ports.AuthAPI   = (*Client)(nil)
	_ ports.CourseAPI = (*Client)(nil)
)

// New builds a client whose outgoing requests carry the token held in creds.
func New(opts Options, creds *Credentials) *Client {
	if creds == nil {
		creds = NewCredentials()
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	envelope := opts.EnvelopePath
	if strings.TrimSpace(envelope) == "" {
		envelope = "not_null(data, @)"
	}

	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		authPrefix: opts.AuthPrefix,
		envelope:   envelope,
		userAgent:  opts.UserAgent,
		creds:      creds,
		recorder:   opts.Recorder,
		logger:     logger,
	}
	backend := originOf(c.baseURL)
	c.http = &http.Client{
		Timeout: opts.Timeout,
		Jar:     opts.Jar,
		Transport: &unauthorizedTransport{
			handler: &c.onUnauth,
			origin:  backend,
			base:    &bearerTransport{creds: creds, origin: backend, base: base},
		},
	}
	return c
}

// OnUnauthorized registers the reaction to 401 responses. It replaces any
// previous handler.
func (c *Client) OnUnauthorized(h ports.UnauthorizedHandler) {
	c.onUnauth.Store(&h)
}

// Credentials returns the holder the client reads its token from.
func (c *Client) Credentials() *Credentials { return c.creds }

type call struct {
	endpoint string
	method   string
	path     string
	in       any
	out      any
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	status, err := c.exchange(ctx, cl)
	d := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.GetCode(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	if c.recorder != nil {
		c.recorder.ObserveAPIRequest(cl.endpoint, outcome, d)
	}
	c.logger.DebugContext(ctx, "backend request",
		"endpoint", cl.endpoint,
		"method", cl.method,
		"status", status,
		"outcome", outcome,
		"duration_ms", d.Milliseconds(),
	)
	return err
}

func (c *Client) exchange(ctx context.Context, cl call) (int, error) {
	var body io.Reader
	if cl.in != nil {
		b, err := json.Marshal(cl.in)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if cl.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, apperrors.FromStatus(resp.StatusCode, errorMessage(raw))
	}
	if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := decodeEnvelope(c.envelope, raw, cl.out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "Request was canceled.")
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "The server took too long to respond.")
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "The server took too long to respond.")
	}
	return apperrors.Transport(err)
}

// decodeEnvelope extracts the payload with the envelope expression and
// decodes it into out. This is the only place response shapes are resolved.
func decodeEnvelope(expr string, raw []byte, out any) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return apperrors.Malformed("Unexpected response from server.", err)
	}
	payload, err := jmespath.Search(expr, doc)
	if err != nil {
		return apperrors.Malformed("Unexpected response from server.", err)
	}
	if payload == nil {
		return nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Malformed("Unexpected response from server.", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return apperrors.Malformed("Unexpected response from server.", err)
	}
	return nil
}

// errorMessage returns the backend's message for a failed request, if any.
func errorMessage(raw []byte) string {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	if _, ok := doc.(map[string]any); !ok {
		return ""
	}
	v, err := jmespath.Search(errorMessagePath, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
