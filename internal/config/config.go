// Package config loads server settings from an optional YAML file with
// environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/paintbynum-mcp/internal/convert"
)

// Environment variables recognized on top of the file. The file is for
// durable settings; the environment is for per-launch tweaks.
const (
	EnvLogLevel  = "PBN_MCP_LOG_LEVEL"
	EnvStorePath = "PBN_MCP_STORE"
	EnvMaxBytes  = "PBN_MCP_MAX_IMAGE_BYTES"
)

// Config is the server configuration. Conversion defaults apply to tool
// calls that omit the corresponding argument; the pipeline itself always
// receives a fully specified convert.Config.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel" json:"logLevel"`

	// StorePath is the SQLite file holding saved sessions. Empty disables
	// persistence; the session tools then report storage as unavailable.
	StorePath string `yaml:"storePath" json:"storePath"`

	// MaxImageBytes caps the size of an uploaded image after base64
	// decoding.
	MaxImageBytes int64 `yaml:"maxImageBytes" json:"maxImageBytes"`

	// Convert holds the default conversion options.
	Convert convert.Config `yaml:"convert" json:"convert"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		LogLevel:      "info",
		StorePath:     "paintbynum.db",
		MaxImageBytes: 32 << 20,
		Convert: convert.Config{
			GridType:    convert.DefaultGridType,
			CellSize:    convert.DefaultCellSize,
			PaletteSize: convert.DefaultPaletteSize,
		},
	}
}

// Load builds the configuration: defaults, overlaid by the YAML file at
// path (if path is non-empty), overlaid by environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv(EnvMaxBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvMaxBytes, err)
		}
		cfg.MaxImageBytes = n
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("config: maxImageBytes must be positive, got %d", c.MaxImageBytes)
	}
	if err := c.Convert.Validate(); err != nil {
		return fmt.Errorf("config: conversion defaults: %w", err)
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
}
