// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package poster

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/metrics"
)

// Service resolves poster URLs through a cache in front of a Fetcher.
type Service struct {
	fetcher Fetcher
	cache   Cache
	logger  zerolog.Logger
}

// New builds a Service from configuration: a JikanClient, optionally behind
// a circuit breaker, and the configured cache backend.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.PosterConfig, logger zerolog.Logger) (*Service, error) {
	var fetcher Fetcher = NewJikanClient(cfg.BaseURL, cfg.Timeout, cfg.RatePerSecond, cfg.Burst)
	if cfg.CircuitBreakerEnabled {
		fetcher = NewBreakerFetcher(fetcher)
	}

	c, err := NewCache(cfg.CacheBackend, cfg.CachePath, cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}
	return NewService(fetcher, c, logger), nil
}

// NewService assembles a Service from parts.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(fetcher Fetcher, cache Cache, logger zerolog.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger.With().Str("component", "poster").Logger(),
	}
}

// PosterURL returns the poster URL for animeID, from cache when possible.
// Cache errors are logged and treated as misses.
func (s *Service) PosterURL(ctx context.Context, animeID int64) (string, error) {
	url, hit, err := s.cache.Get(ctx, animeID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("anime_id", animeID).Msg("Poster cache read failed")
	}
	metrics.RecordCacheAccess("poster", hit)
	if hit {
		metrics.RecordPosterLookup("cache_hit")
		return url, nil
	}

	url, err = s.fetcher.Fetch(ctx, animeID)
	if err != nil {
		return "", fmt.Errorf("poster for anime %d: %w", animeID, err)
	}
	metrics.RecordPosterLookup("success")

	if err := s.cache.Set(ctx, animeID, url); err != nil {
		s.logger.Warn().Err(err).Int64("anime_id", animeID).Msg("Poster cache write failed")
	}
	return url, nil
}

// expirer is implemented by caches that expire entries lazily.
// Badger evicts by TTL on its own.
type expirer interface {
	CleanupExpired() int
}

// CacheSweep adapts a Service to the periodic reload loop. Each Reload drops
// expired poster entries and never reports a new snapshot.
type CacheSweep struct {
	Service *Service
}

// Reload implements services.Reloader.
func (c CacheSweep) Reload(context.Context) (bool, error) {
	e, ok := c.Service.cache.(expirer)
	if !ok {
		return false, nil
	}
	if removed := e.CleanupExpired(); removed > 0 {
		c.Service.logger.Debug().Int("removed", removed).Msg("Expired poster entries swept")
	}
	return false, nil
}

// Close releases the cache.
func (s *Service) Close() error {
	return s.cache.Close()
}
