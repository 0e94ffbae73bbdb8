package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"macremote/logging"
)

const (
	defaultHTTPTimeoutSeconds = 10
	defaultProbeTimeoutMillis = 1000
	defaultBatchSize          = 10
)

// Config holds application configuration
type Config struct {
	DataDir            string `json:"data_dir"`
	OutputDir          string `json:"output_dir"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`
	ProbeTimeoutMillis int    `json:"probe_timeout_ms"`
	BatchSize          int    `json:"batch_size"`
	LogLevel           string `json:"log_level"`
	LogFile            string `json:"log_file"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		DataDir:            defaultDataDir(),
		OutputDir:          "./snapshots",
		HTTPTimeoutSeconds: defaultHTTPTimeoutSeconds,
		ProbeTimeoutMillis: defaultProbeTimeoutMillis,
		BatchSize:          defaultBatchSize,
		LogLevel:           "INFO",
	}
}

// DefaultPath returns the config file location used when none is given
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.json")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".macremote"
	}
	return filepath.Join(home, ".macremote")
}

// LoadConfig loads and validates the application configuration from a file.
// A missing file is not an error: defaults are returned.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ProbeTimeout returns the per-probe timeout as a duration
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMillis) * time.Millisecond
}

// HTTPTimeout returns the control API request timeout as a duration
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// validateConfig restores defaults for unusable values
func validateConfig(cfg *Config) error {
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	if cfg.ProbeTimeoutMillis <= 0 {
		cfg.ProbeTimeoutMillis = defaultProbeTimeoutMillis
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "INFO"
	}
	if _, ok := logging.LogLevelFromString(cfg.LogLevel); !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}

	return nil
}
