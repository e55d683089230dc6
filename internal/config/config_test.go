package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/skyscout/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://sky-scrapper.p.rapidapi.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "sky-scrapper.p.rapidapi.com", cfg.API.Host)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Retries)
	assert.Zero(t, cfg.API.RateLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.Autocomplete.Debounce)
	assert.Equal(t, 2, cfg.Autocomplete.MinQueryLength)
	assert.False(t, cfg.Search.LatestOnly)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, config.ThemeAuto, cfg.UI.Theme)
	assert.Empty(t, cfg.Metrics.Addr)

	assert.Error(t, cfg.RequireAPIKey())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyscout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  key: from-file
  timeout: 3s
  rate_limit: 2
autocomplete:
  debounce: 150ms
  min_query_length: 3
search:
  latest_only: true
ui:
  theme: dark
`), 0o600))

	t.Setenv("SKYSCOUT_API_KEY", "from-env")
	t.Setenv("SKYSCOUT_LOG_LEVEL", "debug")

	cfg, err := config.Load(config.NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.API.Key, "environment wins over file")
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.InDelta(t, 2.0, cfg.API.RateLimit, 0.0001)
	assert.Equal(t, 150*time.Millisecond, cfg.Autocomplete.Debounce)
	assert.Equal(t, 3, cfg.Autocomplete.MinQueryLength)
	assert.True(t, cfg.Search.LatestOnly)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.ThemeDark, cfg.UI.Theme)
	assert.NoError(t, cfg.RequireAPIKey())
	assert.NotNil(t, cfg.Logger())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(config.NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("SKYSCOUT_API_RETRIES", "-1")
	t.Setenv("SKYSCOUT_UI_THEME", "neon")
	t.Setenv("SKYSCOUT_LOG_FORMAT", "xml")
	t.Setenv("SKYSCOUT_AUTOCOMPLETE_MIN_QUERY_LENGTH", "0")

	_, err := config.Load(config.NewViper(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.retries")
	assert.Contains(t, err.Error(), "ui.theme")
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "autocomplete.min_query_length")
}
