package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"claimdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "uploaded_documents", cfg.Storage.LocalDir)
	assert.Equal(t, int64(50), cfg.Storage.MaxFileSizeMB)
	assert.Equal(t, "gemini", cfg.Generator.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Generator.DefaultModel)
	assert.Equal(t, 3, cfg.Generator.MaxRetries)
	assert.Equal(t, 120*time.Second, cfg.Generator.Timeout())
	assert.Equal(t, 180*time.Second, cfg.Generator.TaskTimeout())
	assert.Empty(t, cfg.Auth.APIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLAIMDESK_SERVER_PORT", ":9090")
	t.Setenv("CLAIMDESK_GENERATOR_PROVIDER", "stub")
	t.Setenv("CLAIMDESK_GENERATOR_MAX_RETRIES", "5")
	t.Setenv("CLAIMDESK_AUTH_API_KEY", "env-key")
	t.Setenv("CLAIMDESK_STORAGE_MAX_FILE_SIZE_MB", "10")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "stub", cfg.Generator.Provider)
	assert.Equal(t, 5, cfg.Generator.MaxRetries)
	assert.Equal(t, "env-key", cfg.Auth.APIKey)
	assert.Equal(t, int64(10), cfg.Storage.MaxFileSizeMB)
}

func TestLoad_UnknownStorageProvider(t *testing.T) {
	t.Setenv("CLAIMDESK_STORAGE_PROVIDER", "ftp")

	cfg, err := config.Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresGeneratorKey(t *testing.T) {
	t.Setenv("CLAIMDESK_SERVER_ENVIRONMENT", "production")

	cfg, err := config.Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	t.Setenv("CLAIMDESK_CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}
