package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.StorePath != "paintbynum.db" {
		t.Errorf("StorePath = %q, want paintbynum.db", cfg.StorePath)
	}
	if cfg.Convert.GridType != "square" || cfg.Convert.CellSize != 24 || cfg.Convert.PaletteSize != 16 {
		t.Errorf("conversion defaults = %+v", cfg.Convert)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logLevel: debug
storePath: /tmp/boards.db
convert:
  gridType: honeycomb
  cellSize: 12
  paletteSize: 8
  dither: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.StorePath != "/tmp/boards.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.Convert.GridType != "honeycomb" || cfg.Convert.CellSize != 12 || !cfg.Convert.Dither {
		t.Errorf("convert = %+v", cfg.Convert)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxImageBytes != 32<<20 {
		t.Errorf("MaxImageBytes = %d, want default", cfg.MaxImageBytes)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "logLevel: warn\n")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvStorePath, "/tmp/env.db")
	t.Setenv(EnvMaxBytes, "1024")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", cfg.LogLevel)
	}
	if cfg.StorePath != "/tmp/env.db" {
		t.Errorf("StorePath = %q, want /tmp/env.db", cfg.StorePath)
	}
	if cfg.MaxImageBytes != 1024 {
		t.Errorf("MaxImageBytes = %d, want 1024", cfg.MaxImageBytes)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "logLevel: [oops\n"},
		{"unknown level", "logLevel: loud\n"},
		{"bad conversion defaults", "convert:\n  gridType: blob\n  cellSize: 10\n  paletteSize: 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load accepted invalid configuration")
			}
		})
	}
}

func TestLoad_EmptyStorePathDisablesPersistence(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storePath: \"\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorePath != "" {
		t.Errorf("StorePath = %q, want empty", cfg.StorePath)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load accepted a missing file path")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		got, err := cfg.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q) error: %v", tt.level, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
