package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-ui/config"
)

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.test/")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("STORAGE_PURGE_INTERVAL", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test", cfg.API.BaseURL)
	assert.Equal(t, config.StorageBackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "1m0s", cfg.Storage.PurgeInterval.String())
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	require.Error(t, ValidateConfig(nil))
	require.Error(t, ValidateConfig(&config.AppConfig{Storage: config.StorageConfig{Backend: "etcd"}}))
	require.NoError(t, ValidateConfig(&config.AppConfig{Storage: config.StorageConfig{Backend: config.StorageBackendPostgres}}))
}
