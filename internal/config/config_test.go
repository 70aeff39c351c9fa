package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BITLAB_DB", "BITLAB_CATALOG", "BITLAB_ADDR", "BITLAB_RATE_LIMIT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	// Keep a stray .env in the package directory from leaking in.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BITLAB_DB", "/tmp/lab.db")
	t.Setenv("BITLAB_CATALOG", "/etc/bitlab/catalog.yaml")
	t.Setenv("BITLAB_ADDR", ":9000")
	t.Setenv("BITLAB_RATE_LIMIT", "20")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, ,http://lab.local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lab.db", cfg.DBPath)
	assert.Equal(t, "/etc/bitlab/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.Server.RateLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"http://localhost:5173", "http://lab.local"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	clearEnv(t)
	for _, v := range []string{"fast", "0", "-3"} {
		t.Setenv("BITLAB_RATE_LIMIT", v)
		_, err := Load()
		assert.Error(t, err, "BITLAB_RATE_LIMIT=%q", v)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("LOG_LEVEL")
	dir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=warn\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}
