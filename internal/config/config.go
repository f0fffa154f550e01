// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package config loads service configuration from built-in defaults, an
// optional YAML file, and environment variables (highest priority).
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Data       DataConfig       `koanf:"data"`
	Embeddings EmbeddingsConfig `koanf:"embeddings"`
	Database   DatabaseConfig   `koanf:"database"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Poster     PosterConfig     `koanf:"poster"`
	Security   SecurityConfig   `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestTimeout bounds a single recommendation request, including
	// poster lookups.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log events.
	Caller bool `koanf:"caller"`
}

// DataConfig points at the ratings, catalog and synopsis files. Files may be
// CSV or Parquet; the format is chosen by extension.
type DataConfig struct {
	RatingsPath  string `koanf:"ratings_path"`
	AnimePath    string `koanf:"anime_path"`
	SynopsisPath string `koanf:"synopsis_path"`

	// ReloadInterval is how often file fingerprints are checked for changes.
	// Zero disables reloading.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// EmbeddingsConfig points at the trained embedding artifacts.
//
// The directory holds, per kind (user, anime):
//
//	<kind>_weights.{parquet,csv}  columns: idx, embedding
//	<kind>_map.{parquet,csv}      columns: external_id, idx
type EmbeddingsConfig struct {
	Dir string `koanf:"dir"`

	// NormTolerance is the allowed deviation of a row's L2 norm from 1
	// before it is reported at load time.
	NormTolerance float64 `koanf:"norm_tolerance"`
}

// DatabaseConfig tunes the embedded DuckDB instance used to read data files.
type DatabaseConfig struct {
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
	MaxMemory string `koanf:"max_memory"`
}

// RecommendConfig holds ranking parameters.
type RecommendConfig struct {
	DefaultN      int     `koanf:"default_n"`
	MaxN          int     `koanf:"max_n"`
	UserWeight    float64 `koanf:"user_weight"`
	ContentWeight float64 `koanf:"content_weight"`
}

// PosterConfig configures the poster image lookup client.
type PosterConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	RatePerSecond  float64       `koanf:"rate_per_second"`
	Burst          int           `koanf:"burst"`
	Concurrency    int           `koanf:"concurrency"`
	PlaceholderURL string        `koanf:"placeholder_url"`

	CircuitBreakerEnabled bool `koanf:"circuit_breaker_enabled"`

	// CacheBackend is "memory", "badger" or "none".
	CacheBackend string        `koanf:"cache_backend"`
	CachePath    string        `koanf:"cache_path"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	CacheSize    int           `koanf:"cache_size"`
}

// SecurityConfig holds CORS and inbound rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Load reads configuration from all sources. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
