package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/config"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, "18080", s.ServerPort)
	assert.Equal(t, config.SourceModeLocal, s.Source.Mode)
	assert.Empty(t, s.Source.LocalPath)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("ASSISTANT_LANG", "fr")
	t.Setenv("ASSISTANT_SERVER_PORT", "9999")
	t.Setenv("ASSISTANT_SOURCE_MODE", config.SourceModeWeb)
	t.Setenv("ASSISTANT_SOURCE_URL", "https://dav.example.com/book.vcf")
	t.Setenv("ASSISTANT_SOURCE_USER", "alice")

	s, err := config.LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, "9999", s.ServerPort)
	assert.Equal(t, config.SourceModeWeb, s.Source.Mode)
	assert.Equal(t, "https://dav.example.com/book.vcf", s.Source.WebURL)
	assert.Equal(t, "alice", s.Source.WebUser)
}

func TestLoadSettings_YAMLFile(t *testing.T) {
	content := `language: fr
server_port: "8123"
source:
  mode: web
  web_url: https://dav.example.com/contacts.vcf
  web_user: bob
`
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := config.LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, "8123", s.ServerPort)
	assert.Equal(t, config.SourceModeWeb, s.Source.Mode)
	assert.Equal(t, "https://dav.example.com/contacts.vcf", s.Source.WebURL)
	assert.Equal(t, "bob", s.Source.WebUser)
}

func TestLoadSettings_EnvBeatsFile(t *testing.T) {
	content := "language: fr\n"
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ASSISTANT_LANG", "en")

	s, err := config.LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, "en", s.Language, "Environment variables override the file")
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSettingsRead)
}

func TestLoadSettings_PathFromEnv(t *testing.T) {
	content := "language: fr\n"
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(config.EnvConfigPath, path)

	s, err := config.LoadSettings("")

	require.NoError(t, err)
	assert.Equal(t, "fr", s.Language)
}
