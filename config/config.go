// Package config loads and saves turtlego's TOML configuration:
// canvas dimensions, execution pacing, and palette overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is turtlego's on-disk configuration.
type Config struct {
	// Canvas settings
	Canvas struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"canvas"`

	// Execution settings
	Execution struct {
		DefaultSpeed      uint32 `toml:"default_speed"`
		MinSpeed          uint32 `toml:"min_speed"`
		MaxSpeed          uint32 `toml:"max_speed"`
		SinkBuffer        int    `toml:"sink_buffer"`
		MaxRenderCommands uint64 `toml:"max_render_commands"`
	} `toml:"execution"`

	// Palette settings
	Palette struct {
		Overrides map[string]string `toml:"overrides"` // index (as string) -> "#RRGGBB"; loaded and saved only, the interpreter always uses interp.DefaultPalette
	} `toml:"palette"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Canvas.Width = 640
	cfg.Canvas.Height = 480

	cfg.Execution.DefaultSpeed = 4
	cfg.Execution.MinSpeed = 1
	cfg.Execution.MaxSpeed = 256
	cfg.Execution.SinkBuffer = 4096
	cfg.Execution.MaxRenderCommands = 1_000_000

	cfg.Palette.Overrides = map[string]string{}

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "turtlego")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "turtlego")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// is not an error: the defaults are returned.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
