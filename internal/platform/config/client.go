package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is where the chart client looks for the stock data service.
const DefaultBaseURL = "http://127.0.0.1:5000"

// ClientConfig is the chart client configuration.
type ClientConfig struct {
	BaseURL string          `yaml:"base_url"`
	Log     ClientLogConfig `yaml:"log"`
}

type ClientLogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// DefaultClientConfigPath returns $XDG_CONFIG_HOME/stockchart/config.yaml or
// the platform equivalent. It returns "" when no config directory is known.
func DefaultClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stockchart", "config.yaml")
}

// LoadClient reads the YAML file at path, applies STOCKCHART_* environment
// overrides and fills defaults. A missing file is not an error.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read client config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse client config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("STOCKCHART_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("STOCKCHART_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	if v := os.Getenv("STOCKCHART_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Dir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cfg.Log.Dir = filepath.Join(dir, "stockchart")
		}
	}
	return cfg, nil
}
