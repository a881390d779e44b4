package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "osrs-autoclicker"

// ProfilesDir returns the per-OS directory that holds saved click profiles.
func ProfilesDir() string {
	var appDataDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\osrs-autoclicker\profiles
		appData := os.Getenv("APPDATA")
		if appData != "" {
			appDataDir = filepath.Join(appData, appName, "profiles")
		}
	case "darwin":
		// macOS: ~/Library/Application Support/osrs-autoclicker/profiles
		homeDir, err := os.UserHomeDir()
		if err == nil {
			appDataDir = filepath.Join(homeDir, "Library", "Application Support", appName, "profiles")
		}
	}

	if appDataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			appDataDir = filepath.Join(homeDir, "."+appName, "profiles")
		} else {
			appDataDir = filepath.Join(".", "profiles")
		}
	}

	return appDataDir
}

// LogsDir returns the sibling directory used for the rotating log file.
func LogsDir() string {
	return filepath.Join(filepath.Dir(ProfilesDir()), "logs")
}
