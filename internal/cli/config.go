// Package cli implements the rea command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration, stored at ~/.config/rea/config.yaml.
// Environment variables REA_SERVER_URL and REA_API_KEY override the
// file.
type Config struct {
	ServerURL string `yaml:"server_url"`
	APIKey    string `yaml:"api_key"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rea"), nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the config file, applying environment overrides.
// A missing file is not an error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if v := os.Getenv("REA_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("REA_API_KEY"); v != "" {
		cfg.APIKey = v
	}

	return cfg, nil
}

// SaveConfig writes the config file, creating the directory if needed.
func SaveConfig(cfg *Config) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Remote returns true if a server URL and API key are configured.
func (c *Config) Remote() bool {
	return c.ServerURL != "" && c.APIKey != ""
}
