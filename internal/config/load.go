package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values the viewer cannot start with.
func (c *Config) Validate() error {
	switch c.Animation.Mode {
	case "time", "fixed":
	default:
		return fmt.Errorf("animation.mode must be time or fixed, got %q", c.Animation.Mode)
	}
	if c.Animation.Damping <= 0 || c.Animation.Damping > 1 {
		return fmt.Errorf("animation.damping must be in (0, 1], got %v", c.Animation.Damping)
	}
	if c.Viewer.ExplodeAmount < 0 || c.Viewer.ExplodeAmount > 5 {
		return fmt.Errorf("viewer.explode_amount must be in [0, 5], got %v", c.Viewer.ExplodeAmount)
	}
	switch c.Viewer.Environment {
	case "sunset", "night":
	default:
		return fmt.Errorf("viewer.environment must be sunset or night, got %q", c.Viewer.Environment)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "ExplodeViewer")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ExplodeViewer")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "explode-viewer")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "explode-viewer")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
