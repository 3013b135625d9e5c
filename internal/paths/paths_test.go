package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/teashop", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "teashop"), got)
	})

	t.Run("propagates home lookup failure", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		orig := platformDir.homeDir
		platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
		defer func() { platformDir.homeDir = orig }()

		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestDefaultConfigDir_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}

	got, err := DefaultConfigDir()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Library", "Application Support", "teashop"), got)
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", wantSub: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", wantSub: "/env/config"},
		{name: "platform default when both empty", wantSub: "teashop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{name: "flag wins over all", flag: "/flag/data", configValue: "/config/data", envVal: "/env/data", want: "/flag/data"},
		{name: "config.yaml wins over env", configValue: "/config/data", envVal: "/env/data", want: "/config/data"},
		{name: "env wins when flag and config empty", envVal: "/env/data", want: "/env/data"},
		{name: "CWD default when all empty", want: filepath.Join(cwd, DefaultDataDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "relative/env")
	t.Setenv(EnvDataDir, "")

	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

	got, err = ResolveDataDir("", "relative/config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}

func TestConfigAndSessionFiles(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "config.yaml"), ConfigFile("/cfg"))
	assert.Equal(t, filepath.Join("/cfg", "session.yaml"), SessionFile("/cfg"))
}
