// Package paths resolves the configuration and data directories and the
// files teashop keeps in them.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName names the per-user configuration directory.
const appDirName = "teashop"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// overrides it.
const DefaultDataDirName = ".teashop-db"

// Files kept in the configuration directory.
const (
	ConfigFileName  = "config.yaml"
	SessionFileName = "session.yaml"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TEASHOP_CONFIG_DIR"
	EnvDataDir   = "TEASHOP_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/teashop (fallback ~/.config/teashop)
// macOS:   ~/Library/Application Support/teashop
// Windows: %APPDATA%/teashop
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > TEASHOP_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml value > TEASHOP_DATA_DIR > $(CWD)/.teashop-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// SessionFile returns the session.yaml path inside configDir.
func SessionFile(configDir string) string {
	return filepath.Join(configDir, SessionFileName)
}
