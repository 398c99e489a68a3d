// Package config holds the repacker's persistent settings: report/export
// defaults and API server options, loaded from an XDG-style TOML file the
// way the teacher's emulator config does it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the repacker's configuration.
type Config struct {
	// Analysis settings
	Analysis struct {
		Verbose bool `toml:"verbose"`
	} `toml:"analysis"`

	// Report settings
	Report struct {
		Format string `toml:"format"` // text, json, csv
	} `toml:"report"`

	// Export settings
	Export struct {
		Enabled     bool   `toml:"enabled"`
		Format      string `toml:"format"` // aligned, compact
		BaseAddress uint32 `toml:"base_address"`
	} `toml:"export"`

	// API server settings
	API struct {
		Port            int  `toml:"port"`
		BroadcastEvents bool `toml:"broadcast_events"`
	} `toml:"api"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Analysis.Verbose = false

	cfg.Report.Format = "text"

	cfg.Export.Enabled = false
	cfg.Export.Format = "aligned"
	cfg.Export.BaseAddress = 0x8000

	cfg.API.Port = 8080
	cfg.API.BroadcastEvents = true

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
		configDir = filepath.Join(configDir, "vliw-repack")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "vliw-repack")

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

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: the defaults are returned as-is.
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

	f, err := os.Create(path) // #nosec G304 -- operator-supplied config path
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
