// Package paths centralizes the on-disk layout of mixfleet's per-user state.
//
// All persistent state lives under a single per-user cache directory:
//
//	<os.UserCacheDir()>/mixfleet/projects    project path cache, one path per line
//	<os.UserCacheDir()>/mixfleet/ignored     ignored project names, one per line
//	<os.UserCacheDir()>/mixfleet/history.db  run history (sqlite)
//
// Configuration lives under <os.UserConfigDir()>/mixfleet/config.yaml.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appDir = "mixfleet"

// CacheDir returns the mixfleet cache directory. It does not create it.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// ConfigDir returns the mixfleet config directory. It does not create it.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// ConfigFile returns the path of the config file.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectCacheFile returns the path of the project path cache.
func ProjectCacheFile() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "projects"), nil
}

// IgnoreFile returns the path of the ignored-names file.
func IgnoreFile() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ignored"), nil
}

// HistoryDBFile returns the path of the run history database.
func HistoryDBFile() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// DefaultScanRoot returns the default project discovery root (~/src/flt).
// Falls back to the current directory when the home dir is unknown.
func DefaultScanRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "src", "flt")
}

// ExpandHome expands a leading "~/" to the user's home directory.
// Any other path is returned unchanged, including a bare "~".
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
