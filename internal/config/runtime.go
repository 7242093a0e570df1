package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimePath = ".campinnova"

// GetRuntimePath is where the .env file, database and input history live.
// Relative paths are taken from the user's home directory.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("CAMPINNOVA_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimePath
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
