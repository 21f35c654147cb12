package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdpower/ccstatusline/internal/calculator"
	"github.com/sdpower/ccstatusline/internal/loader"
	"github.com/sdpower/ccstatusline/internal/types"
	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file location.
const EnvPath = "CCSTATUSLINE_CONFIG"

type Config struct {
	ContextCapacity int64  `yaml:"context_capacity"`
	ScanWindow      int    `yaml:"scan_window"`
	GitCommand      string `yaml:"git_command"`
}

func Default() *Config {
	return &Config{
		ContextCapacity: calculator.DefaultCapacity,
		ScanWindow:      loader.DefaultWindow,
		GitCommand:      "git",
	}
}

// DefaultPath returns $CCSTATUSLINE_CONFIG, else the XDG config location.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccstatusline", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccstatusline", "config.yaml")
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault never fails; the returned error only explains why defaults were used.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ContextCapacity <= 0 {
		return types.ValidationError{Field: "context_capacity", Message: "must be positive"}
	}
	if c.ScanWindow <= 0 {
		return types.ValidationError{Field: "scan_window", Message: "must be positive"}
	}
	if c.GitCommand == "" {
		return types.ValidationError{Field: "git_command", Message: "must not be empty"}
	}
	return nil
}
