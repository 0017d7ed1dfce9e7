// Command fc25-scraper collects the full EA FC player ratings dataset by
// paginating the public ratings API, caching each page, and writing the
// concatenated result as indented JSON plus a gzip artifact.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sauravhiremath/ea-fc25-scraper/pkg/cache"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/client"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/config"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/logging"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/output"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/ratelimit"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/scraper"
)

func main() {
	var (
		configPath  = flag.String("config", getEnv("FC25_CONFIG", ""), "path to YAML config file (optional)")
		skipCache   = flag.Bool("skip-cache", false, "bypass the page cache and always fetch")
		logLevel    = flag.String("log-level", "", "override log level (debug, info, warn, error)")
		metricsAddr = flag.String("metrics-addr", "", "listen address for /metrics during the run (overrides config)")
	)
	flag.Parse()

	if err := run(*configPath, *skipCache, *logLevel, *metricsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "fc25-scraper: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, skipCache bool, logLevel, metricsAddr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	ctx := context.Background()

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	apiClient, err := buildClient(cfg)
	if err != nil {
		return err
	}

	interval, err := cfg.RequestInterval()
	if err != nil {
		return err
	}

	s, err := scraper.New(apiClient, store, scraper.Options{
		PageLimit: cfg.API.PageLimit,
		Limiter:   ratelimit.New(interval),
	})
	if err != nil {
		return err
	}

	result, err := s.Run(ctx, skipCache)
	if err != nil {
		return err
	}

	if !result.Complete {
		logger.Warn().
			Err(result.Err).
			Int("items", len(result.Items)).
			Msg("Dataset is truncated: a page fetch failed mid-run")
	}

	logger.Info().
		Int("items", len(result.Items)).
		Str("file", cfg.Output.File).
		Msg("Saving dataset")
	if err := output.Save(result.Items, cfg.Output.File); err != nil {
		return err
	}

	logger.Info().
		Str("file", cfg.Output.CompressedFile).
		Msg("Compressing dataset")
	if err := output.Compress(cfg.Output.File, cfg.Output.CompressedFile); err != nil {
		return err
	}

	logger.Info().
		Int("items", len(result.Items)).
		Int("pages", result.Pages).
		Bool("complete", result.Complete).
		Msg("Done")

	return nil
}

// loadConfig loads the YAML config when a path is given, otherwise the
// built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildStore constructs the page cache backend selected by config.
func buildStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		ttl, err := cfg.RedisTTL()
		if err != nil {
			return nil, err
		}
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.Redis.Addr,
			DB:   cfg.Cache.Redis.DB,
		})
		return cache.NewRedisStore(redisClient, ttl), nil
	default:
		return cache.NewDiskStore(cfg.Cache.Dir), nil
	}
}

// buildClient constructs the ratings API client from config.
func buildClient(cfg *config.Config) (*client.Client, error) {
	clientCfg := client.DefaultConfig()
	clientCfg.BaseURL = cfg.API.BaseURL
	clientCfg.Locale = cfg.API.Locale
	clientCfg.PageLimit = cfg.API.PageLimit
	clientCfg.UserAgent = cfg.API.UserAgent
	return client.New(clientCfg)
}

// serveMetrics exposes /metrics for the duration of the run.
func serveMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Msg("Metrics server stopped")
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
