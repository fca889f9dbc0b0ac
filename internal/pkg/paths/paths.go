package paths

import (
	"os"
	"path/filepath"
)

// DataDir returns the application data directory.
func DataDir() string {
	userConfigDir, err := os.UserConfigDir()
	if err != nil || userConfigDir == "" {
		return filepath.Join(".", "data")
	}
	return filepath.Join(userConfigDir, "carpick")
}

// EnsureDataDir creates the data directory if needed and returns its path.
func EnsureDataDir() string {
	dir := DataDir()
	os.MkdirAll(dir, 0755)
	return dir
}

// DefaultDBPath returns the default sqlite inventory database path.
func DefaultDBPath() string {
	return filepath.Join(EnsureDataDir(), "inventory.db")
}
