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
	cfg := DefaultConfig()

	assert.Equal(t, "na1", cfg.Riot.Region)
	assert.Equal(t, 20, cfg.Riot.RequestsPerSecond)
	assert.Equal(t, 100, cfg.Riot.RequestsPerTwoMinutes)
	assert.Equal(t, 100, cfg.Scrape.PageSize)
	assert.False(t, cfg.Scrape.WithTimeline)
	assert.Equal(t, BackendFile, cfg.Output.Backend)
	assert.False(t, cfg.Output.Append)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-test-key")
	t.Setenv("RIOTSCRAPER_REGION", "euw1")
	t.Setenv("RIOTSCRAPER_PAGE_SIZE", "50")
	t.Setenv("RIOTSCRAPER_WITH_TIMELINE", "true")
	t.Setenv("RIOTSCRAPER_SINK", "sqlite")
	t.Setenv("RIOTSCRAPER_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "RGAPI-test-key", cfg.Riot.APIKey)
	assert.Equal(t, "euw1", cfg.Riot.Region)
	assert.Equal(t, 50, cfg.Scrape.PageSize)
	assert.True(t, cfg.Scrape.WithTimeline)
	assert.Equal(t, BackendSQLite, cfg.Output.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("RIOTSCRAPER_PAGE_SIZE", "not-a-number")
	t.Setenv("RIOTSCRAPER_REQUESTS_PER_SECOND", "-5")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 100, cfg.Scrape.PageSize)
	assert.Equal(t, 20, cfg.Riot.RequestsPerSecond)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
riot:
  region: kr
  requests_per_second: 10
scrape:
  page_size: 25
  with_timeline: true
output:
  backend: redis
  redis_addr: "redis.internal:6379"
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "kr", cfg.Riot.Region)
	assert.Equal(t, 10, cfg.Riot.RequestsPerSecond)
	assert.Equal(t, 25, cfg.Scrape.PageSize)
	assert.True(t, cfg.Scrape.WithTimeline)
	assert.Equal(t, BackendRedis, cfg.Output.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Output.RedisAddr)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Untouched values keep their defaults
	assert.Equal(t, 30*time.Second, cfg.Riot.RequestTimeout)
}

func TestLoadFromFileMissingPathIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.LoadFromFile(""))
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty region", func(c *Config) { c.Riot.Region = "" }},
		{"zero rps", func(c *Config) { c.Riot.RequestsPerSecond = 0 }},
		{"page size too large", func(c *Config) { c.Scrape.PageSize = 500 }},
		{"page size zero", func(c *Config) { c.Scrape.PageSize = 0 }},
		{"unknown backend", func(c *Config) { c.Output.Backend = "dynamo" }},
		{"redis without addr", func(c *Config) {
			c.Output.Backend = BackendRedis
			c.Output.RedisAddr = ""
		}},
		{"negative retries", func(c *Config) { c.Retry.MaxAttempts = -1 }},
		{"bad multiplier", func(c *Config) { c.Retry.Multiplier = 0.5 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"api-key":       "RGAPI-flag-key",
		"region":        "euw1",
		"output":        "out.jsonl",
		"append":        true,
		"with-timeline": true,
		"page-size":     10,
		"rate-limit":    5,
		"sink":          BackendSQLite,
	})

	assert.Equal(t, "RGAPI-flag-key", cfg.Riot.APIKey)
	assert.Equal(t, "euw1", cfg.Riot.Region)
	assert.Equal(t, "out.jsonl", cfg.Output.Destination)
	assert.True(t, cfg.Output.Append)
	assert.True(t, cfg.Scrape.WithTimeline)
	assert.Equal(t, 10, cfg.Scrape.PageSize)
	assert.Equal(t, 5, cfg.Riot.RequestsPerSecond)
	assert.Equal(t, BackendSQLite, cfg.Output.Backend)
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Riot.Region = "kr"
	cfg.Scrape.WithTimeline = true
	require.NoError(t, cfg.Save(path))

	reloaded := DefaultConfig()
	require.NoError(t, reloaded.LoadFromFile(path))
	assert.Equal(t, "kr", reloaded.Riot.Region)
	assert.True(t, reloaded.Scrape.WithTimeline)
}
