package fsutil

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the name of the application used in paths
	AppName = "mdshare"
)

// GetConfigDir returns the platform-specific config directory for the application
// On Linux: ~/.config/mdshare/
// On macOS: ~/Library/Application Support/mdshare/
// On Windows: %AppData%\mdshare\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// GetDataDir returns the directory holding the bundled catalogue documents.
// Format: <config_dir>/catalogues/
func GetDataDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "catalogues"), nil
}
