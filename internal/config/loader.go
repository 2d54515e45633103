package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// searchPaths returns the ordered list of config file locations to try.
func searchPaths() []string {
	var paths []string

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "notch-hook", "notch-hook.yaml"))
	}

	paths = append(paths, "notch-hook.yaml")

	if envPath := os.Getenv("NOTCH_HOOK_CONFIG"); envPath != "" {
		paths = append(paths, envPath)
	}

	return paths
}

// Load reads configuration from YAML files and environment variables.
// Files are loaded in order (each overrides the previous):
// ~/.config/notch-hook/notch-hook.yaml < ./notch-hook.yaml < $NOTCH_HOOK_CONFIG
func Load() (*Config, error) {
	cfg := Defaults()

	for _, path := range searchPaths() {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := Defaults()

	if err := loadFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have higher priority than YAML config values.
func applyEnvOverrides(cfg *Config) {
	if path := os.Getenv("NOTCH_HOOK_SOCKET"); path != "" {
		cfg.Socket.Path = path
	}
	if level := os.Getenv("NOTCH_HOOK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if token := os.Getenv("NOTCH_HOOK_INSPECT_TOKEN"); token != "" {
		cfg.Inspect.Token = token
	}
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted config search paths
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	slog.Debug("loading config file", "path", path)

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func validate(cfg *Config) error {
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if !logLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}

	if cfg.Socket.Path == "" {
		return fmt.Errorf("socket.path must not be empty")
	}

	if cfg.Preview.Dir == "" {
		return fmt.Errorf("preview.dir must not be empty")
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}

	if cfg.History.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must not be negative, got %d", cfg.History.RetentionDays)
	}

	if cfg.Inspect.Port < 1 || cfg.Inspect.Port > 65535 {
		return fmt.Errorf("inspect.port must be between 1 and 65535, got %d", cfg.Inspect.Port)
	}

	if cfg.Inspect.Host == "0.0.0.0" {
		return fmt.Errorf("inspect.host must not be 0.0.0.0, the inspect API serves local files and listens on localhost only")
	}

	if cfg.Source == "" {
		cfg.Source = "claude-code"
	}

	cfg.Log.File = ExpandHome(cfg.Log.File)
	cfg.Socket.Path = ExpandHome(cfg.Socket.Path)
	cfg.Preview.Dir = ExpandHome(cfg.Preview.Dir)
	cfg.History.Path = ExpandHome(cfg.History.Path)

	return nil
}
