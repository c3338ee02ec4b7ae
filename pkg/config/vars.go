package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "regiodb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/regiodb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/regiodb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/regiodb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/regiodb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// TablesFilePath returns the full path to the tables.yaml registry file.
// Returns ~/.config/regiodb/tables.yaml by default.
func TablesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "tables.yaml")
}

// ResponseCachePath returns the full path to the sqlite response cache.
// Returns ~/.cache/regiodb/responses.db by default.
func ResponseCachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "responses.db")
}
