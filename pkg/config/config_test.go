package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "USDT", cfg.Radar.QuoteAsset)
	assert.Equal(t, 10, cfg.Radar.TopN)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL.TopPicks)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL.Indicators)
	assert.Equal(t, 20*time.Second, cfg.CacheTTL.Whale)
	assert.Equal(t, 750000.0, cfg.Whale.ThresholdUSD)
	assert.Equal(t, 80, cfg.Whale.LookbackTrades)
	assert.NotEmpty(t, cfg.Binance.Endpoints)
	assert.NotEmpty(t, cfg.Radar.StableBases)
	assert.Equal(t, "memory", cfg.Cache.Backend)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
server:
  port: 9090
radar:
  top_n: 5
  volume_min_usd: 100000000
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Radar.TopN)
	assert.Equal(t, 100000000.0, cfg.Radar.VolumeMinUSD)
	// untouched fields still get defaults
	assert.Equal(t, "USDT", cfg.Radar.QuoteAsset)
}

func TestValidateWeightSums(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	cfg.Regime.WeightPrimary = 0.9
	assert.Error(t, cfg.Validate())

	cfg, err = Default()
	require.NoError(t, err)
	cfg.Scoring.WeightLiquidity = 0.9
	assert.Error(t, cfg.Validate())
}

func TestValidateScalpBands(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Scalp.TargetMin = 0.05
	assert.Error(t, cfg.Validate())
}

func TestValidateConditionalSections(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Kafka.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg, err = Default()
	require.NoError(t, err)
	cfg.Telegram.Enabled = true
	assert.Error(t, cfg.Validate())
	cfg.Telegram.Token = "t"
	cfg.Telegram.ChatID = "c"
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: development\n"), 0o644))

	t.Setenv("BINANCE_BASE", "https://example.test/")
	t.Setenv("VOL_MIN_USD", "90000000")
	t.Setenv("WHALE_THRESHOLD_USD", "500000")
	t.Setenv("REDIS_ADDR", "redis-host:6380")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test", cfg.Binance.Endpoints[0])
	assert.Equal(t, 90000000.0, cfg.Radar.VolumeMinUSD)
	assert.Equal(t, 500000.0, cfg.Whale.ThresholdUSD)
	assert.Equal(t, "redis-host", cfg.Cache.Redis.Host)
	assert.Equal(t, 6380, cfg.Cache.Redis.Port)
}
