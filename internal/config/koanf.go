// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/animerec/config.yaml",
	"/etc/animerec/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultPlaceholderURL is returned in place of a poster when the lookup fails.
const DefaultPlaceholderURL = "https://via.placeholder.com/150x220?text=No+Image"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           5000,
			Host:           "0.0.0.0",
			Timeout:        60 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Data: DataConfig{
			RatingsPath:    "/data/processed/rating_df.csv",
			AnimePath:      "/data/processed/anime_df.csv",
			SynopsisPath:   "/data/processed/synopsis_df.csv",
			ReloadInterval: time.Minute,
		},
		Embeddings: EmbeddingsConfig{
			Dir:           "/data/weights",
			NormTolerance: 1e-3,
		},
		Database: DatabaseConfig{
			Threads:   0,
			MaxMemory: "1GB",
		},
		Recommend: RecommendConfig{
			DefaultN:      10,
			MaxN:          50,
			UserWeight:    0.5,
			ContentWeight: 0.5,
		},
		Poster: PosterConfig{
			BaseURL:               "https://api.jikan.moe/v4",
			Timeout:               10 * time.Second,
			RatePerSecond:         3, // Jikan: 3 requests/second, 60/minute
			Burst:                 3,
			Concurrency:           4,
			PlaceholderURL:        DefaultPlaceholderURL,
			CircuitBreakerEnabled: true,
			CacheBackend:          "memory",
			CachePath:             "/data/poster-cache",
			CacheTTL:              7 * 24 * time.Hour,
			CacheSize:             20000,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadWithKoanf loads configuration in three layers, each overriding the last:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":       "server.port",
	"http_host":       "server.host",
	"http_timeout":    "server.timeout",
	"request_timeout": "server.request_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Data files
	"ratings_path":         "data.ratings_path",
	"anime_path":           "data.anime_path",
	"synopsis_path":        "data.synopsis_path",
	"data_reload_interval": "data.reload_interval",

	// Embedding artifacts
	"embeddings_dir":            "embeddings.dir",
	"embeddings_norm_tolerance": "embeddings.norm_tolerance",

	// DuckDB
	"duckdb_threads":    "database.threads",
	"duckdb_max_memory": "database.max_memory",

	// Ranking
	"recommend_default_n":      "recommend.default_n",
	"recommend_max_n":          "recommend.max_n",
	"recommend_user_weight":    "recommend.user_weight",
	"recommend_content_weight": "recommend.content_weight",

	// Poster lookup
	"poster_base_url":        "poster.base_url",
	"poster_timeout":         "poster.timeout",
	"poster_rate_per_second": "poster.rate_per_second",
	"poster_burst":           "poster.burst",
	"poster_concurrency":     "poster.concurrency",
	"poster_placeholder_url": "poster.placeholder_url",
	"poster_circuit_breaker": "poster.circuit_breaker_enabled",
	"poster_cache_backend":   "poster.cache_backend",
	"poster_cache_path":      "poster.cache_path",
	"poster_cache_ttl":       "poster.cache_ttl",
	"poster_cache_size":      "poster.cache_size",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc maps an environment variable name to a koanf path, or ""
// to skip it.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - EMBEDDINGS_DIR -> embeddings.dir
//   - POSTER_CACHE_BACKEND -> poster.cache_backend
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
