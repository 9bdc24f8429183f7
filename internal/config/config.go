// Package config loads the project configuration for shell-ls.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file, looked up in the working directory.
const FileName = ".shell-ls.yaml"

// Config holds the user-adjustable settings. Precedence: defaults, then the
// YAML file, then SHELL_LS_* environment variables.
type Config struct {
	// ExecutablePath locates the shellcheck binary. A bare name is resolved
	// via PATH at spawn time; empty disables linting entirely.
	ExecutablePath string `yaml:"executable" env:"SHELL_LS_SHELLCHECK"`

	// CWD is the base directory sourced files resolve against.
	// Empty = derive from the document being linted.
	CWD string `yaml:"cwd" env:"SHELL_LS_CWD"`

	// Shell is the dialect passed to shellcheck (bash, sh, dash, ksh).
	Shell string `yaml:"shell" env:"SHELL_LS_SHELL"`

	// TimeoutSeconds bounds a single shellcheck run.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"SHELL_LS_TIMEOUT"`
}

// Load reads configuration from path (FileName when empty). A missing file
// is not an error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ExecutablePath: "shellcheck",
		Shell:          "bash",
		TimeoutSeconds: 30,
	}

	if path == "" {
		path = FileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults and environment still apply.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// Timeout returns TimeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
