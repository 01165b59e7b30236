package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the assembler's persisted configuration.
type Config struct {
	// Assembler settings
	Assembler struct {
		DefaultCPU   string   `toml:"default_cpu"`
		IncludePaths []string `toml:"include_paths"`
	} `toml:"assembler"`

	// Output settings
	Output struct {
		MapMode string `toml:"map_mode"` // identity, lorom, hirom
		Patch   bool   `toml:"patch"`
	} `toml:"output"`

	// Diagnostics settings. Only ColorOutput is read (by main, for diag.NewRenderer);
	// ContextLines and MaxErrors are loaded and saved but nothing applies them.
	Diagnostics struct {
		ColorOutput  bool `toml:"color_output"`
		ContextLines int  `toml:"context_lines"`
		MaxErrors    int  `toml:"max_errors"`
	} `toml:"diagnostics"`

	// Inspector settings. Loaded and saved; the inspector does not read them.
	Inspector struct {
		ShowDiagnostics bool `toml:"show_diagnostics"`
		ShowSymbols     bool `toml:"show_symbols"`
	} `toml:"inspector"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Assembler.DefaultCPU = "snes-cpu"
	cfg.Assembler.IncludePaths = nil

	cfg.Output.MapMode = "lorom"
	cfg.Output.Patch = false

	cfg.Diagnostics.ColorOutput = true
	cfg.Diagnostics.ContextLines = 1
	cfg.Diagnostics.MaxErrors = 0

	cfg.Inspector.ShowDiagnostics = true
	cfg.Inspector.ShowSymbols = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\zealgo\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "zealgo")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/zealgo/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "zealgo")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path. No package of this module calls
// it; the service package logs through the standard log package's default output.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "zealgo", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "zealgo", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is not an error — it
// yields DefaultConfig() unchanged, so a fresh install never needs to run a setup step first.
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
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
