package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	settings, err := LoadSettings(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "console", settings.Logging.Format)
	assert.Equal(t, DefaultActor, settings.Actor)
	assert.Equal(t, DefaultHistoryPath(), settings.History.Path)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiscal.yaml")
	content := "logging:\n  level: debug\n  format: json\nhistory:\n  path: /tmp/fiscal-test.db\nactor: clerk@court\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := LoadSettings(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "json", settings.Logging.Format)
	assert.Equal(t, "stderr", settings.Logging.Output, "unset keys keep defaults")
	assert.Equal(t, "/tmp/fiscal-test.db", settings.History.Path)
	assert.Equal(t, "clerk@court", settings.Actor)
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FISCAL_ACTOR", "auditor")
	t.Setenv("FISCAL_LOGGING_LEVEL", "error")

	settings, err := LoadSettings(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "auditor", settings.Actor)
	assert.Equal(t, "error", settings.Logging.Level)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := LoadSettings(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
