package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the CLI.
const (
	EnvConfig = "INBOXVIEW_CONFIG"
	EnvRoot   = "INBOXVIEW_ROOT"
	EnvOut    = "INBOXVIEW_OUT"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = ".inboxview.yaml"

// Config holds user defaults. Command-line flags take precedence.
type Config struct {
	// Root is the directory scanned for export roots. Empty means cwd.
	Root string `yaml:"root"`

	// OutputDir receives -save transcripts. Empty means cwd.
	OutputDir string `yaml:"output_dir"`

	// RepairBeforeFilter fixes text encoding before substring filtering.
	RepairBeforeFilter bool `yaml:"repair_before_filter"`

	Color      string `yaml:"color"`
	DateLayout string `yaml:"date_layout"`
	TimeLayout string `yaml:"time_layout"`
	Verbose    bool   `yaml:"verbose"`
}

// Default returns the built-in settings used when no config file exists.
func Default() Config {
	return Config{
		Color:      "auto",
		DateLayout: "1/2/2006",
		TimeLayout: "3:04:05 PM",
	}
}

// Path resolves the config file: explicit path, then INBOXVIEW_CONFIG, then
// DefaultFileName.
func Path(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return env
	}
	return DefaultFileName
}

// LoadConfig reads path over the defaults. A missing file is not an error.
// Environment overrides are applied last.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if env := strings.TrimSpace(os.Getenv(EnvRoot)); env != "" {
		c.Root = env
	}
	if env := strings.TrimSpace(os.Getenv(EnvOut)); env != "" {
		c.OutputDir = env
	}
}

// Validate rejects an unknown color mode and empty date or time layouts.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Color)) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never: %q", c.Color)
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		return fmt.Errorf("date_layout cannot be empty")
	}
	if strings.TrimSpace(c.TimeLayout) == "" {
		return fmt.Errorf("time_layout cannot be empty")
	}
	return nil
}

// WriteConfig writes cfg as YAML. An existing file is left alone.
func WriteConfig(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
