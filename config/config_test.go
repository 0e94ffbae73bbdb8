package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.ProbeTimeout())
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"batch_size": 25, "probe_timeout_ms": 300, "log_level": "DEBUG", "data_dir": "/tmp/mr"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 300*time.Millisecond, cfg.ProbeTimeout())
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "/tmp/mr", cfg.DataDir)
	assert.Equal(t, 10, cfg.HTTPTimeoutSeconds)
}

func TestLoadConfigRestoresNonPositiveValues(t *testing.T) {
	path := writeConfig(t, `{"batch_size": 0, "probe_timeout_ms": -5, "http_timeout_seconds": 0}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 1000, cfg.ProbeTimeoutMillis)
	assert.Equal(t, 10, cfg.HTTPTimeoutSeconds)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{not json`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"log_level": "LOUD"}`))
	assert.Error(t, err)
}
