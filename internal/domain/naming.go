package domain

import (
	"fmt"
	"path/filepath"
)

// File names inside the data directory.
const (
	ConfigFileName  = "config.toml"
	JSONStoreName   = "tasks.json"
	SQLiteStoreName = "tasks.db"
	EnvFileName     = ".env"
	appDirName      = "vtodo"
)

// DataDir returns the data directory below the given base data home
// (e.g. $XDG_DATA_HOME).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, appDirName)
}

// GlobalConfigDir returns the global config directory below configHome
// (e.g. $XDG_CONFIG_HOME).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, appDirName)
}

// TaskLogPath returns the path to the task log file.
func TaskLogPath(dataDir string, taskID int) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("task-%d.log", taskID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "vtodo.log")
}

// StorePath returns the default store file path for the given backend.
func StorePath(dataDir, store string) string {
	if store == StoreSQLite {
		return filepath.Join(dataDir, SQLiteStoreName)
	}
	return filepath.Join(dataDir, JSONStoreName)
}
