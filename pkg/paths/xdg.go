// Package paths resolves the tour's config and state locations.
//
// Resolution order:
// 1. GROVE_HOME (portable root) → $GROVE_HOME/{config,state}
// 2. XDG_CONFIG_HOME for the config directory
// 3. Platform defaults → ~/.config/grove and ~/.grove/tour
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if groveHome := os.Getenv("GROVE_HOME"); groveHome != "" {
		return filepath.Join(groveHome, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// ConfigDir returns the Grove configuration directory, or "" when no home
// directory can be found.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "grove")
}

// GlobalConfigFile returns the global tour.yml path.
func GlobalConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "tour.yml")
}

// StateFile returns the default state file path.
func StateFile() (string, error) {
	if groveHome := os.Getenv("GROVE_HOME"); groveHome != "" {
		return filepath.Join(groveHome, "state", "tour", "state.yml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".grove", "tour", "state.yml"), nil
}

// Expand expands a leading ~ and environment variables in path.
func Expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
