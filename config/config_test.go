package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Report.Format != "text" {
		t.Errorf("Expected Report.Format=text, got %s", cfg.Report.Format)
	}
	if cfg.Export.Enabled {
		t.Error("Expected Export.Enabled=false")
	}
	if cfg.Export.Format != "aligned" {
		t.Errorf("Expected Export.Format=aligned, got %s", cfg.Export.Format)
	}
	if cfg.Export.BaseAddress != 0x8000 {
		t.Errorf("Expected Export.BaseAddress=0x8000, got %#x", cfg.Export.BaseAddress)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected API.Port=8080, got %d", cfg.API.Port)
	}
	if !cfg.API.BroadcastEvents {
		t.Error("Expected API.BroadcastEvents=true")
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
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "vliw-repack" && path != "config.toml" {
			t.Errorf("Expected path in vliw-repack directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Report.Format = "json"
	cfg.Export.Enabled = true
	cfg.Export.Format = "compact"
	cfg.API.Port = 9090

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

	if loaded.Report.Format != "json" {
		t.Errorf("Expected Report.Format=json, got %s", loaded.Report.Format)
	}
	if !loaded.Export.Enabled {
		t.Error("Expected Export.Enabled=true")
	}
	if loaded.Export.Format != "compact" {
		t.Errorf("Expected Export.Format=compact, got %s", loaded.Export.Format)
	}
	if loaded.API.Port != 9090 {
		t.Errorf("Expected API.Port=9090, got %d", loaded.API.Port)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Report.Format != "text" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[api]
port = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
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
