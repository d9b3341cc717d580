package utils

import (
	"os"
	"path/filepath"
)

// GetDataDir returns ~/.boxity, falling back to the temp dir when the home
// directory is unknown.
func GetDataDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, ".boxity")
}
