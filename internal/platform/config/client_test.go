package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearClientEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"STOCKCHART_BASE_URL", "STOCKCHART_LOG_DIR", "STOCKCHART_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadClient_MissingFileUsesDefaults(t *testing.T) {
	clearClientEnv(t)

	cfg, err := LoadClient(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadClient_File(t *testing.T) {
	clearClientEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://charts.internal:8080/\nlog:\n  dir: /tmp/sc\n  level: debug\n"), 0o600))

	cfg, err := LoadClient(path)

	require.NoError(t, err)
	assert.Equal(t, "http://charts.internal:8080", cfg.BaseURL)
	assert.Equal(t, "/tmp/sc", cfg.Log.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadClient_EnvOverridesFile(t *testing.T) {
	clearClientEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://from-file\n"), 0o600))
	t.Setenv("STOCKCHART_BASE_URL", "http://from-env:5000")
	t.Setenv("STOCKCHART_LOG_LEVEL", "warn")

	cfg, err := LoadClient(path)

	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadClient_InvalidYAML(t *testing.T) {
	clearClientEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated\n"), 0o600))

	_, err := LoadClient(path)

	assert.Error(t, err)
}
