package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME: fromfile\nMEDIA_ROOT: /srv/media\n"), 0o600))

	t.Setenv("DB_NAME", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("MEDIA_ROOT", "")
	config = Config{}
	LoadConfig(path)
	t.Cleanup(func() { config = Config{} })

	assert.Equal(t, "fromfile", GetConfig("DB_NAME"))
	assert.Equal(t, "8001", GetConfig("APP_PORT"))

	t.Setenv("MEDIA_ROOT", "/from/env")
	assert.Equal(t, "/from/env", GetConfig("MEDIA_ROOT"))
}

func TestGetConfigInt_FallsBackToDefault(t *testing.T) {
	t.Setenv("SESSION_TTL_DAYS", "not-a-number")
	assert.Equal(t, 7, GetConfigInt("SESSION_TTL_DAYS"))

	t.Setenv("SESSION_TTL_DAYS", "14")
	assert.Equal(t, 14, GetConfigInt("SESSION_TTL_DAYS"))
}

func TestGetConfigBool(t *testing.T) {
	t.Setenv("SECURE_COOKIES", "True")
	assert.True(t, GetConfigBool("SECURE_COOKIES"))

	t.Setenv("SECURE_COOKIES", "0")
	assert.False(t, GetConfigBool("SECURE_COOKIES"))
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("DB_NAME", "")
	config = Config{}
	LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, "beertrack", GetConfig("DB_NAME"))
}
