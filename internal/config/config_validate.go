// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingPath is returned when a required file or directory path is empty.
var ErrMissingPath = errors.New("required path is not set")

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validCacheBackends = map[string]bool{
	"memory": true, "badger": true, "none": true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validatePoster(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateData() error {
	paths := []struct{ name, value string }{
		{"RATINGS_PATH", c.Data.RatingsPath},
		{"ANIME_PATH", c.Data.AnimePath},
		{"SYNOPSIS_PATH", c.Data.SynopsisPath},
		{"EMBEDDINGS_DIR", c.Embeddings.Dir},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" {
			return fmt.Errorf("%s: %w", p.name, ErrMissingPath)
		}
	}
	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("DATA_RELOAD_INTERVAL must not be negative")
	}
	if c.Embeddings.NormTolerance < 0 {
		return fmt.Errorf("EMBEDDINGS_NORM_TOLERANCE must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_N must be at least 1")
	}
	if r.MaxN < r.DefaultN {
		return fmt.Errorf("RECOMMEND_MAX_N (%d) must be >= RECOMMEND_DEFAULT_N (%d)", r.MaxN, r.DefaultN)
	}
	if r.UserWeight < 0 || r.ContentWeight < 0 {
		return fmt.Errorf("recommendation weights must not be negative")
	}
	return nil
}

func (c *Config) validatePoster() error {
	p := c.Poster
	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("POSTER_BASE_URL must be an absolute URL, got %q", p.BaseURL)
	}
	if p.RatePerSecond <= 0 {
		return fmt.Errorf("POSTER_RATE_PER_SECOND must be positive")
	}
	if p.Burst < 1 {
		return fmt.Errorf("POSTER_BURST must be at least 1")
	}
	if p.Concurrency < 1 {
		return fmt.Errorf("POSTER_CONCURRENCY must be at least 1")
	}
	if p.PlaceholderURL == "" {
		return fmt.Errorf("POSTER_PLACEHOLDER_URL must not be empty")
	}
	if !validCacheBackends[p.CacheBackend] {
		return fmt.Errorf("POSTER_CACHE_BACKEND must be one of: memory, badger, none")
	}
	if p.CacheBackend == "badger" && p.CachePath == "" {
		return fmt.Errorf("POSTER_CACHE_PATH: %w", ErrMissingPath)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}
