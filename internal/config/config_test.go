package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.API.URL)
	assert.Empty(t, cfg.API.Key)
	assert.Zero(t, cfg.API.RequestTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, writeDefault(path))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.API.URL)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoadFileWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  // backend
  "api": {
    "url": "https://time.example.com", /* production */
    "key": "from-file",
    "request_timeout": "15s",
  },
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://time.example.com", cfg.API.URL)
	assert.Equal(t, "from-file", cfg.API.Key)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"url": "http://file"}}`), 0o600))
	t.Setenv("TTC_API_URL", "http://env:9000")
	t.Setenv("TTC_API_KEY", "env-key")
	t.Setenv("TTC_LOG_LEVEL", "debug")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:9000", cfg.API.URL)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"url": "ftp://nope"}}`), 0o600))
	_, err := LoadFile(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"log": {"level": "loud"}}`), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissingIsDefault(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.API.URL)
}
