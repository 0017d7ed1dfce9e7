package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://drop-api.ea.com/rating/ea-sports-fc", cfg.API.BaseURL)
	assert.Equal(t, "en", cfg.API.Locale)
	assert.Equal(t, 100, cfg.API.PageLimit)
	assert.Equal(t, BackendDisk, cfg.Cache.Backend)
	assert.Equal(t, "cache", cfg.Cache.Dir)
	assert.Equal(t, "players_data.json", cfg.Output.File)
	assert.Equal(t, "players_data.json.gz", cfg.Output.CompressedFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:8080/ratings
  page_limit: 50
  request_interval: 250ms
cache:
  backend: redis
  redis:
    addr: localhost:6400
    ttl: 12h
output:
  file: out.json
  compressed_file: out.json.gz
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8080/ratings", cfg.API.BaseURL)
	assert.Equal(t, 50, cfg.API.PageLimit)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "localhost:6400", cfg.Cache.Redis.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)

	interval, err := cfg.RequestInterval()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, interval)

	ttl, err := cfg.RedisTTL()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, ttl)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "en", cfg.API.Locale)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "api: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "negative page limit",
			mutate:  func(c *Config) { c.API.PageLimit = -5 },
			wantErr: true,
		},
		{
			name:    "bad request interval",
			mutate:  func(c *Config) { c.API.RequestInterval = "soon" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Cache.Backend = "memcached" },
			wantErr: true,
		},
		{
			name: "redis backend without addr",
			mutate: func(c *Config) {
				c.Cache.Backend = BackendRedis
				c.Cache.Redis.Addr = ""
			},
			wantErr: true,
		},
		{
			name: "redis backend with bad ttl",
			mutate: func(c *Config) {
				c.Cache.Backend = BackendRedis
				c.Cache.Redis.TTL = "forever"
			},
			wantErr: true,
		},
		{
			name:    "disk backend without dir",
			mutate:  func(c *Config) { c.Cache.Dir = "" },
			wantErr: true,
		},
		{
			name:    "missing output file",
			mutate:  func(c *Config) { c.Output.File = "" },
			wantErr: true,
		},
		{
			name:    "missing compressed output file",
			mutate:  func(c *Config) { c.Output.CompressedFile = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
