package config

import (
	"os"
	"path/filepath"
)

// appName is the directory name used under the XDG base directories.
const appName = "callchart"

// Path returns the default configuration file location following the
// XDG convention: $XDG_CONFIG_HOME/callchart/config.toml, falling back
// to ~/.config/callchart/config.toml.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory using the XDG convention
// (~/.cache/callchart/ unless XDG_CACHE_HOME overrides the base).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
