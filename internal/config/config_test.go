package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "lighthouise.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.InDelta(t, 90_000, cfg.Assumptions.CostPerPerson, 0.001)
	assert.InDelta(t, 0.25, cfg.Assumptions.RangeFactor, 0.001)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, 1024, cfg.Anthropic.MaxTokens)
	assert.InDelta(t, 30, cfg.Anthropic.RequestsPerMin, 0.001)
	assert.Equal(t, "https://data.sec.gov", cfg.Edgar.BaseURL)
	assert.InDelta(t, 8, cfg.Edgar.RequestsPerSec, 0.001)
	assert.Equal(t, 24, cfg.Edgar.CacheTTLHours)
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/lighthouise
server:
  port: 9090
log:
  level: debug
  format: console
assumptions:
  cost_per_person: 120000
  range_factor: 0.1
notion:
  token: secret-token
  findings_db: db-abc
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/lighthouise", cfg.Store.DatabaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.InDelta(t, 120_000, cfg.Assumptions.CostPerPerson, 0.001)
	assert.InDelta(t, 0.1, cfg.Assumptions.RangeFactor, 0.001)
	assert.Equal(t, "secret-token", cfg.Notion.Token)
	assert.Equal(t, "db-abc", cfg.Notion.FindingsDB)

	// Unset values still take defaults.
	assert.Equal(t, "https://data.sec.gov", cfg.Edgar.BaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	chTempDir(t)

	t.Setenv("LIGHTHOUISE_STORE_DRIVER", "postgres")
	t.Setenv("LIGHTHOUISE_SERVER_PORT", "7070")
	t.Setenv("LIGHTHOUISE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	t.Run("json production", func(t *testing.T) {
		require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
		assert.NotNil(t, zap.L())
	})

	t.Run("console development", func(t *testing.T) {
		require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
		assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		err := InitLogger(LogConfig{Level: "loud", Format: "json"})
		require.Error(t, err)
	})
}
