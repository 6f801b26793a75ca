package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peervault/peervault/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "peervault", cfg.Service.Name)
	assert.Equal(t, logger.LevelInfo, cfg.Log.Level)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 30*time.Second, cfg.API.ReadTimeout)
	assert.Equal(t, "./data/peervault.db", cfg.DB.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peervault.yaml")
	content := []byte(`
service:
  name: peervault-test
log:
  level: debug
  format: json
api:
  port: 9090
db:
  path: /tmp/test.db
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, "peervault-test", cfg.Service.Name)
	assert.Equal(t, logger.LevelDebug, cfg.Log.Level)
	assert.Equal(t, logger.FormatJSON, cfg.Log.Format)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "/tmp/test.db", cfg.DB.Path)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PEERVAULT_API_PORT", "7070")
	t.Setenv("PEERVAULT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.API.Port)
	assert.Equal(t, logger.LevelWarn, cfg.Log.Level)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("PEERVAULT_API_PORT", "99999")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.port")
}

func TestLoadWithMissingFileFails(t *testing.T) {
	_, err := LoadWithPath("/nonexistent/peervault.yaml")
	require.Error(t, err)
}

func TestValidateLogFormat(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Log.Format = "xml"
	require.Error(t, cfg.Validate())
}
