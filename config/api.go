package config

import (
	"strings"
	"time"
)

const (
	defaultAPIBaseURL   = "http://localhost:8080"
	defaultAuthPrefix   = "/api/auth"
	defaultEnvelopePath = "not_null(data, @)"
	defaultAPITimeout   = 15 * time.Second
	maxAPITimeout       = 2 * time.Minute
)

// APIConfig describes how to reach the learning-platform backend.
type APIConfig struct {
	// BaseURL selects the backend host. This is the only externally tunable
	// parameter of the session core.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`

	// AuthPrefix is the path prefix of the login/register endpoints.
	// Older backends mount them under /api/auth, newer ones under /api/public/auth.
	AuthPrefix string `env:"API_AUTH_PREFIX" envDefault:"/api/auth"`

	// EnvelopePath is the JMESPath expression that extracts a payload from a response body.
	EnvelopePath string `env:"API_ENVELOPE_PATH" envDefault:"not_null(data, @)"`

	// Timeout bounds every backend request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize normalises the base URL and prefix and clamps the timeout.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = defaultAPIBaseURL
	}

	a.AuthPrefix = strings.TrimRight(strings.TrimSpace(a.AuthPrefix), "/")
	if a.AuthPrefix == "" {
		a.AuthPrefix = defaultAuthPrefix
	}
	if !strings.HasPrefix(a.AuthPrefix, "/") {
		a.AuthPrefix = "/" + a.AuthPrefix
	}

	if a.EnvelopePath = strings.TrimSpace(a.EnvelopePath); a.EnvelopePath == "" {
		a.EnvelopePath = defaultEnvelopePath
	}

	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.Timeout > maxAPITimeout {
		a.Timeout = maxAPITimeout
	}
}
