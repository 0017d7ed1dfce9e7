// Package config defines the application configuration. All knobs that
// were once process-wide constants (base URL, cache directory, output
// file names) live here so tests can substitute them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names for the page cache.
const (
	BackendDisk  = "disk"
	BackendRedis = "redis"
)

// Config represents the application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig contains ratings API settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	Locale    string `yaml:"locale"`
	PageLimit int    `yaml:"page_limit"`
	UserAgent string `yaml:"user_agent"`
	// RequestInterval is the minimum delay between page fetches
	// (Go duration string, e.g. "500ms"). Empty disables pacing.
	RequestInterval string `yaml:"request_interval"`
}

// CacheConfig contains page cache settings.
type CacheConfig struct {
	Backend string      `yaml:"backend"` // "disk" or "redis"
	Dir     string      `yaml:"dir"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig contains settings for the Redis cache backend.
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
	// TTL for cached pages (Go duration string). Empty or "0" means
	// entries never expire, like the disk backend.
	TTL string `yaml:"ttl"`
}

// OutputConfig contains output artifact settings.
type OutputConfig struct {
	File           string `yaml:"file"`
	CompressedFile string `yaml:"compressed_file"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// MetricsConfig contains the optional Prometheus endpoint settings.
type MetricsConfig struct {
	// Addr is the listen address for /metrics during a run
	// (e.g. ":9090"). Empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://drop-api.ea.com/rating/ea-sports-fc",
			Locale:    "en",
			PageLimit: 100,
			UserAgent: "ea-fc25-scraper/1.0",
		},
		Cache: CacheConfig{
			Backend: BackendDisk,
			Dir:     "cache",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Output: OutputConfig{
			File:           "players_data.json",
			CompressedFile: "players_data.json.gz",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	config.applyDefaults()

	return config, nil
}

// applyDefaults fills fields the YAML file left empty.
func (c *Config) applyDefaults() {
	def := Default()

	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.Locale == "" {
		c.API.Locale = def.API.Locale
	}
	if c.API.PageLimit == 0 {
		c.API.PageLimit = def.API.PageLimit
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = def.API.UserAgent
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = def.Cache.Backend
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = def.Cache.Dir
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = def.Cache.Redis.Addr
	}
	if c.Output.File == "" {
		c.Output.File = def.Output.File
	}
	if c.Output.CompressedFile == "" {
		c.Output.CompressedFile = def.Output.CompressedFile
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// RequestInterval parses the configured pacing interval.
func (c *Config) RequestInterval() (time.Duration, error) {
	if c.API.RequestInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(c.API.RequestInterval)
}

// RedisTTL parses the configured Redis entry TTL.
func (c *Config) RedisTTL() (time.Duration, error) {
	if c.Cache.Redis.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Cache.Redis.TTL)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url is required")
	}

	if c.API.PageLimit <= 0 {
		return fmt.Errorf("api page_limit must be positive, got: %d", c.API.PageLimit)
	}

	if _, err := c.RequestInterval(); err != nil {
		return fmt.Errorf("invalid api request_interval: %w", err)
	}

	switch c.Cache.Backend {
	case BackendDisk:
		if c.Cache.Dir == "" {
			return fmt.Errorf("cache dir is required for the disk backend")
		}
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache redis addr is required for the redis backend")
		}
		if _, err := c.RedisTTL(); err != nil {
			return fmt.Errorf("invalid cache redis ttl: %w", err)
		}
	default:
		return fmt.Errorf("cache backend must be %q or %q, got: %q",
			BackendDisk, BackendRedis, c.Cache.Backend)
	}

	if c.Output.File == "" {
		return fmt.Errorf("output file is required")
	}
	if c.Output.CompressedFile == "" {
		return fmt.Errorf("output compressed_file is required")
	}

	return nil
}
