package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory before any config is parsed,
// so the .env inside it can be loaded first.
func GetRuntimePath() string {
	return absRuntimePath(os.Getenv("BUTLER_RUNTIME_PATH"))
}

func absRuntimePath(path string) string {
	if path == "" {
		path = ".butler"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
