package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidWindow is returned when the configured window has no area.
var ErrInvalidWindow = errors.New("window width and height must be positive")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings the viewer cannot run without.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Camera.MovementSpeed < 0 || c.Camera.MouseSensitivity < 0 {
		return fmt.Errorf("camera speeds must not be negative")
	}
	return nil
}

// TexturePath resolves a texture file named by the scene description.
// Absolute paths are returned unchanged.
func (c *Config) TexturePath(file string) string {
	if filepath.IsAbs(file) || c.Scene.TextureDir == "" {
		return file
	}
	return filepath.Join(c.Scene.TextureDir, file)
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
		return filepath.Join(home, "Library", "Application Support", "StillLife")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "StillLife")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "stilllife")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "stilllife")
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
