package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Assembler.DefaultCPU != "snes-cpu" {
		t.Errorf("Expected DefaultCPU=snes-cpu, got %s", cfg.Assembler.DefaultCPU)
	}
	if cfg.Output.MapMode != "lorom" {
		t.Errorf("Expected MapMode=lorom, got %s", cfg.Output.MapMode)
	}
	if cfg.Output.Patch {
		t.Error("Expected Patch=false")
	}
	if !cfg.Diagnostics.ColorOutput {
		t.Error("Expected ColorOutput=true")
	}
	if cfg.Diagnostics.ContextLines != 1 {
		t.Errorf("Expected ContextLines=1, got %d", cfg.Diagnostics.ContextLines)
	}
	if cfg.Diagnostics.MaxErrors != 0 {
		t.Errorf("Expected MaxErrors=0 (unlimited), got %d", cfg.Diagnostics.MaxErrors)
	}
	if !cfg.Inspector.ShowSymbols {
		t.Error("Expected ShowSymbols=true")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "zealgo" && path != "config.toml" {
			t.Errorf("Expected path in zealgo directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Assembler.DefaultCPU = "snes-cpu"
	cfg.Assembler.IncludePaths = []string{"lib", "include"}
	cfg.Output.MapMode = "hirom"
	cfg.Output.Patch = true
	cfg.Diagnostics.ColorOutput = false
	cfg.Diagnostics.MaxErrors = 20

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Output.MapMode != "hirom" {
		t.Errorf("Expected MapMode=hirom, got %s", loaded.Output.MapMode)
	}
	if !loaded.Output.Patch {
		t.Error("Expected Patch=true")
	}
	if loaded.Diagnostics.ColorOutput {
		t.Error("Expected ColorOutput=false")
	}
	if loaded.Diagnostics.MaxErrors != 20 {
		t.Errorf("Expected MaxErrors=20, got %d", loaded.Diagnostics.MaxErrors)
	}
	if len(loaded.Assembler.IncludePaths) != 2 {
		t.Errorf("Expected 2 include paths, got %v", loaded.Assembler.IncludePaths)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Assembler.DefaultCPU != "snes-cpu" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[output]
patch = "not a bool"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
