// Package paths resolves where pantry keeps its configuration, its database
// and the source files a rebuild reads.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user platform directories.
const AppName = "pantry"

// CWD-relative defaults.
const (
	DefaultDataDirName   = ".pantry-db"
	DefaultSourceDirName = "data"
)

// ConfigFileName is the config file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable overrides.
const (
	EnvConfigDir = "PANTRY_CONFIG_DIR"
	EnvDataDir   = "PANTRY_DATA_DIR"
	EnvSourceDir = "PANTRY_SOURCE_DIR"
)

// platform holds the OS lookups, swapped out in tests.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// userDir returns the per-user directory for AppName. On Linux it honours
// xdgVar and falls back to ~/linuxFallback; elsewhere it uses
// os.UserConfigDir (Application Support on macOS, %APPDATA% on Windows).
func userDir(xdgVar string, linuxFallback ...string) (string, error) {
	if platform.goos == "linux" {
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platform.homeDir()
		if err != nil {
			return "", err
		}
		parts := append([]string{home}, linuxFallback...)
		return filepath.Join(append(parts, AppName)...), nil
	}
	dir, err := platform.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultConfigDir is $XDG_CONFIG_HOME/pantry (or ~/.config/pantry) on Linux.
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultUserDataDir is $XDG_DATA_HOME/pantry (or ~/.local/share/pantry) on
// Linux. It is not part of the data dir precedence chain; `pantry init
// --user` writes it into config.yaml.
func DefaultUserDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir applies: flag > PANTRY_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(flag, "", EnvConfigDir, DefaultConfigDir)
}

// ResolveDataDir applies: flag > config value > PANTRY_DATA_DIR >
// $(CWD)/.pantry-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvDataDir, cwdJoin(DefaultDataDirName))
}

// ResolveSourceDir applies: flag > PANTRY_SOURCE_DIR > $(CWD)/data.
func ResolveSourceDir(flag string) (string, error) {
	return resolve(flag, "", EnvSourceDir, cwdJoin(DefaultSourceDirName))
}

// ConfigFile returns the config file path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// resolve returns the first non-empty of flag, configValue and the env var as
// an absolute path, or else fallback().
func resolve(flag, configValue, envVar string, fallback func() (string, error)) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(envVar)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	return fallback()
}

func cwdJoin(name string) func() (string, error) {
	return func() (string, error) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, name), nil
	}
}
