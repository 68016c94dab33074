package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, content string) {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, configDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))
}

func TestLoadWithoutFileReturnsZeroSettings(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestLoadReadsFileDefaults(t *testing.T) {
	writeSettingsFile(t, "port = \"/dev/ttyACM0\"\nbaudrate = 115200\nnewline = \"crlf\"\n")

	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", s.Port)
	assert.Equal(t, 115200, s.BaudRate)
	assert.Equal(t, "crlf", s.Newline)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	writeSettingsFile(t, "port = \"/dev/ttyACM0\"\nbaudrate = 115200\n")
	t.Setenv("MINIMON_BAUDRATE", "9600")
	t.Setenv("MINIMON_PORT", "/dev/ttyUSB3")

	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB3", s.Port)
	assert.Equal(t, 9600, s.BaudRate)
}

func TestLoadEnvWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MINIMON_NEWLINE", "lf")

	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "lf", s.Newline)
	assert.Empty(t, s.Port)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	writeSettingsFile(t, "port = [broken\n")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings file")
}
