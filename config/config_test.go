package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("expected default base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.AuthPrefix != "/api/auth" {
		t.Errorf("expected default auth prefix, got %q", cfg.API.AuthPrefix)
	}
	if cfg.API.EnvelopePath != "not_null(data, @)" {
		t.Errorf("expected default envelope path, got %q", cfg.API.EnvelopePath)
	}
	if cfg.Storage.Backend != StorageBackendMemory {
		t.Errorf("expected memory storage by default, got %q", cfg.Storage.Backend)
	}
	if cfg.HTTP.Addr != ":3000" {
		t.Errorf("expected default addr, got %q", cfg.HTTP.Addr)
	}
	if !cfg.Observability.Metrics.IsEnabled() {
		t.Error("expected metrics to be enabled by default")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.learnsphere.example/ ")
	t.Setenv("API_AUTH_PREFIX", "api/public/auth/")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("STORAGE_TTL", "2h")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("DB_HOST", "pg")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://api.learnsphere.example" {
		t.Errorf("expected trimmed base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.AuthPrefix != "/api/public/auth" {
		t.Errorf("expected normalised prefix, got %q", cfg.API.AuthPrefix)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Storage.Backend != StorageBackendRedis {
		t.Errorf("expected redis backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.TTL != 2*time.Hour {
		t.Errorf("expected 2h ttl, got %v", cfg.Storage.TTL)
	}
	if cfg.Redis.URI != "redis:6379" {
		t.Errorf("expected redis uri, got %q", cfg.Redis.URI)
	}
	if cfg.Postgres.Host != "pg" {
		t.Errorf("expected db host, got %q", cfg.Postgres.Host)
	}
}

func TestStorageBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    StorageBackend
		expectError bool
	}{
		{input: "memory", expected: StorageBackendMemory},
		{input: " POSTGRES ", expected: StorageBackendPostgres},
		{input: "redis", expected: StorageBackendRedis},
		{input: "sqlite", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var b StorageBackend
			err := b.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, b)
			}
		})
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	cfg := APIConfig{BaseURL: "  ", AuthPrefix: "", EnvelopePath: " ", Timeout: time.Hour}
	cfg.Sanitize()

	if cfg.BaseURL != defaultAPIBaseURL {
		t.Errorf("expected base url fallback, got %q", cfg.BaseURL)
	}
	if cfg.AuthPrefix != defaultAuthPrefix {
		t.Errorf("expected prefix fallback, got %q", cfg.AuthPrefix)
	}
	if cfg.EnvelopePath != defaultEnvelopePath {
		t.Errorf("expected envelope fallback, got %q", cfg.EnvelopePath)
	}
	if cfg.Timeout != maxAPITimeout {
		t.Errorf("expected timeout clamped to %v, got %v", maxAPITimeout, cfg.Timeout)
	}

	cfg = APIConfig{Timeout: -1}
	cfg.Sanitize()
	if cfg.Timeout != defaultAPITimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{LoginRatePerMinute: 0, LoginBurst: -3, MinPasswordLength: 0}
	cfg.Sanitize()

	if cfg.LoginRatePerMinute != 1 || cfg.LoginBurst != 1 || cfg.MinPasswordLength != 1 {
		t.Fatalf("expected values clamped to 1, got %+v", cfg)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, Path: " metrics "}
	cfg.Sanitize()

	if cfg.Path != "/metrics" {
		t.Fatalf("expected path to be normalised, got %q", cfg.Path)
	}

	cfg = ObservabilityMetricsConfig{Enabled: false, Path: "/m"}
	cfg.Sanitize()
	if cfg.IsEnabled() {
		t.Fatal("expected metrics to stay disabled")
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 12}
	cfg.Sanitize()
	if cfg.CompressionLevel != 9 {
		t.Fatalf("expected level clamped to 9, got %d", cfg.CompressionLevel)
	}

	cfg = HTTPConfig{CompressionLevel: 0}
	cfg.Sanitize()
	if cfg.CompressionLevel != 1 {
		t.Fatalf("expected level clamped to 1, got %d", cfg.CompressionLevel)
	}
}
