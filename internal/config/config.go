package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by --store.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const dirName = ".todolists"

// Config is resolved once per process from flags, environment and defaults.
type Config struct {
	Dir       string
	Backend   string
	Theme     string
	LogFormat string
	LogLevel  string
	// Color is auto, always or never.
	Color string
}

// Defaults returns the configuration with environment overrides applied.
func Defaults() Config {
	return Config{
		Dir:       EnvOr("TODO_DIR", ""),
		Backend:   EnvOr("TODO_STORE", BackendJSON),
		Theme:     EnvOr("TODO_THEME", "classic"),
		LogFormat: EnvOr("TODO_LOG_FORMAT", "text"),
		LogLevel:  EnvOr("TODO_LOG_LEVEL", "info"),
		Color:     EnvOr("TODO_COLOR", "auto"),
	}
}

// Resolve fills in the data dir and validates enumerated values.
func (c Config) Resolve() (Config, error) {
	if strings.TrimSpace(c.Dir) == "" {
		d, err := DefaultDir()
		if err != nil {
			return c, err
		}
		c.Dir = d
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return c, fmt.Errorf("unknown store backend: %q (want json|sqlite)", c.Backend)
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "text", "json":
	default:
		return c, fmt.Errorf("unknown log format: %q (want text|json)", c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return c, err
	}
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case "":
		c.Color = "auto"
	case "auto", "always", "never":
	default:
		return c, fmt.Errorf("unknown color mode: %q (want auto|always|never)", c.Color)
	}
	return c, nil
}

// DefaultDir is ~/.todolists.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func EnvOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
