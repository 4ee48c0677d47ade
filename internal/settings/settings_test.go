package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, DefaultAdminPort, s.AdminPort)
	assert.Empty(t, s.ConfigFile)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imposterd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"log_level: debug\nadmin_port: 9999\nconfig_dir: /etc/imposters\n",
	), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 9999, s.AdminPort)
	assert.Equal(t, "/etc/imposters", s.ConfigDir)
	// Unset keys keep defaults
	assert.Equal(t, "text", s.LogFormat)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imposterd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0644))

	t.Setenv("IMPOSTERD_LOG_LEVEL", "error")
	t.Setenv("IMPOSTERD_ADMIN_PORT", "3000")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", s.LogLevel)
	assert.Equal(t, 3000, s.AdminPort)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/imposterd.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Setenv("IMPOSTERD_LOG_LEVEL", "loud")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("IMPOSTERD_ADMIN_PORT", "99999")
		_, err := Load("")
		assert.Error(t, err)
	})
}
