// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// DBPathEnv overrides the default database location.
const DBPathEnv = "LEITNER_DB"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// XDGDBPath returns the database path under the XDG data home.
func XDGDBPath() string {
	return filepath.Join(XDGDataHome(), "leitner", "leitner.db")
}

// DefaultDBPath returns LEITNER_DB when set, else XDGDBPath.
func DefaultDBPath() string {
	if v := os.Getenv(DBPathEnv); v != "" {
		return v
	}
	return XDGDBPath()
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "leitner", "config.toml")
}
