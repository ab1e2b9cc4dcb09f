package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform swaps the OS lookups for the duration of a test.
func fakePlatform(t *testing.T, goos, home, configDir string) {
	t.Helper()
	saved := platform
	t.Cleanup(func() { platform = saved })
	platform.goos = goos
	platform.homeDir = func() (string, error) { return home, nil }
	platform.userConfigDir = func() (string, error) { return configDir, nil }
}

func TestDefaultConfigDir(t *testing.T) {
	tests := []struct {
		name string
		goos string
		xdg  string
		want string
	}{
		{"linux with XDG_CONFIG_HOME", "linux", "/tmp/xdg-config", "/tmp/xdg-config/pantry"},
		{"linux falls back to ~/.config", "linux", "", "/home/u/.config/pantry"},
		{"darwin uses Application Support", "darwin", "/ignored", "/Users/u/Library/Application Support/pantry"},
		{"windows uses APPDATA", "windows", "", "/Users/u/Library/Application Support/pantry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakePlatform(t, tt.goos, "/home/u", "/Users/u/Library/Application Support")
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)

			got, err := DefaultConfigDir()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultUserDataDir(t *testing.T) {
	fakePlatform(t, "linux", "/home/u", "")

	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	got, err := DefaultUserDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-data/pantry", got)

	t.Setenv("XDG_DATA_HOME", "")
	got, err = DefaultUserDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.local/share/pantry", got)
}

func TestDefaultConfigDir_HomeError(t *testing.T) {
	fakePlatform(t, "linux", "", "")
	platform.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := DefaultConfigDir()
	assert.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	fakePlatform(t, "linux", "/home/u", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{"flag wins over env", "/explicit/config", "/env/config", "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", "/env/config"},
		{"platform default when both empty", "", "", "/home/u/.config/pantry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name          string
		flag          string
		configYAMLVal string
		envVal        string
		want          string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config.yaml wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", "/env/data"},
		{"CWD default when all empty", "", "", "", filepath.Join(cwd, DefaultDataDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configYAMLVal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSourceDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	t.Setenv(EnvSourceDir, "")
	got, err := ResolveSourceDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, DefaultSourceDirName), got)

	t.Setenv(EnvSourceDir, "/env/src")
	got, err = ResolveSourceDir("")
	require.NoError(t, err)
	assert.Equal(t, "/env/src", got)

	got, err = ResolveSourceDir("/flag/src")
	require.NoError(t, err)
	assert.Equal(t, "/flag/src", got)
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "relative/env")
	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

	t.Setenv(EnvDataDir, "")
	got, err = ResolveDataDir("", "relative/config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/pantry", "config.yaml"), ConfigFile("/etc/pantry"))
}
