package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"fap/internal/ferrors"
)

// LoadResult holds the outcome of a config load attempt, separating the
// resolved path and any validation error from the config itself so
// callers can decide how to present a failure (e.g. log and continue
// with defaults) rather than aborting startup.
type LoadResult struct {
	Config          *Config
	ConfigPath      string
	ValidationError error
}

// LoadWithValidation loads configuration from path (or, if empty, the
// first standard location found via FindConfigFile), falling back to
// DefaultConfig on any read, parse, or validation failure.
func LoadWithValidation(path string) *LoadResult {
	result := &LoadResult{
		Config:     DefaultConfig(),
		ConfigPath: path,
	}

	if path == "" {
		result.ConfigPath = FindConfigFile()
	}

	if result.ConfigPath == "" {
		return result
	}

	if _, err := os.Stat(result.ConfigPath); os.IsNotExist(err) {
		return result
	}

	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(result.ConfigPath, cfg); err != nil {
		result.ValidationError = ferrors.Wrap(err, ferrors.CodeInvalidConfig, "failed to parse config file")
		result.Config = DefaultConfig()

		return result
	}

	if err := cfg.Validate(); err != nil {
		result.ValidationError = ferrors.Wrap(err, ferrors.CodeInvalidConfig, "invalid configuration")
		result.Config = DefaultConfig()

		return result
	}

	result.Config = cfg

	return result
}

// FindConfigFile searches standard locations for a fap.toml config file.
// Returns "" if none is found.
func FindConfigFile() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		path := filepath.Join(xdgConfig, "fap", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(homeDir, ".config", "fap", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		path = filepath.Join(homeDir, ".fap.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if _, err := os.Stat("fap.toml"); err == nil {
		return "fap.toml"
	}

	return ""
}
