// Package config loads the outlet CLI configuration from
// ~/.outlet/config.yaml with OUTLET_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
)

// Config is the persisted CLI configuration.
type Config struct {
	// BaseURL is the marketplace API root, e.g. http://localhost:8080/api.
	BaseURL string `yaml:"base_url" json:"baseUrl"`
	// StateDir holds the session record and other local state.
	StateDir string `yaml:"state_dir" json:"stateDir"`
	Log      Log    `yaml:"log,omitempty" json:"log"`
}

// Log configures CLI logging.
type Log struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BaseURL:  api.DefaultBaseURL,
		StateDir: defaultStateDir(),
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the file
// is absent, then applies OUTLET_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("parse config %s", path), err)
		}
	case os.IsNotExist(err):
		// defaults stand
	default:
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("read config %s", path), err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "marshal config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("write config %s", path), err)
	}
	return nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.NewValidationError("base_url is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return errors.NewValidationError(fmt.Sprintf("base_url must be an http(s) URL, got %q", c.BaseURL))
	}
	if c.StateDir == "" {
		return errors.NewValidationError("state_dir is required")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := envValue("OUTLET_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := envValue("OUTLET_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := envValue("OUTLET_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := envValue("OUTLET_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func envValue(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".outlet"
	}
	return filepath.Join(home, ".outlet")
}

func defaultStateDir() string {
	return configDir()
}
