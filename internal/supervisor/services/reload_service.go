// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reloader rebuilds a snapshot when its backing files changed and reports
// whether a new snapshot was published.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// ReloadSource names a Reloader for logging.
type ReloadSource struct {
	Name     string
	Reloader Reloader
}

// ReloadService polls its sources every interval.
type ReloadService struct {
	sources  []ReloadSource
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates a reload service. interval must be positive.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(interval time.Duration, logger zerolog.Logger, sources ...ReloadSource) *ReloadService {
	return &ReloadService{
		sources:  sources,
		interval: interval,
		timeout:  5 * time.Minute,
		logger:   logger.With().Str("service", "reload").Logger(),
		name:     "reload-service",
	}
}

// Serve implements suture.Service. Reload errors are logged and retried on
// the next tick; they never stop the service.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Int("sources", len(s.sources)).
		Msg("snapshot reload service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot reload service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.reloadAll(ctx)
		}
	}
}

// reloadAll checks every source once.
func (s *ReloadService) reloadAll(ctx context.Context) {
	for _, src := range s.sources {
		if ctx.Err() != nil {
			return
		}

		reloadCtx, cancel := context.WithTimeout(ctx, s.timeout)
		start := time.Now()
		changed, err := src.Reloader.Reload(reloadCtx)
		cancel()

		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("source", src.Name).Msg("snapshot reload failed; keeping previous snapshot")
		case changed:
			s.logger.Info().
				Str("source", src.Name).
				Dur("duration", time.Since(start)).
				Msg("snapshot reloaded")
		default:
			s.logger.Debug().Str("source", src.Name).Msg("snapshot unchanged")
		}
	}
}

// String implements fmt.Stringer.
func (s *ReloadService) String() string {
	return s.name
}
