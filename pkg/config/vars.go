package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "occdb"

	// TextThreshold is the column-width boundary of the type inference:
	// a text column whose every value is shorter than the threshold is
	// declared short text, otherwise long text.
	TextThreshold = 255
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/occdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/occdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/occdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/occdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
