// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/embedding"
	"github.com/tomtom215/animerec/internal/logging"
)

// Recommender produces recommendations from injected providers.
// It is safe for concurrent use.
type Recommender struct {
	cfg    Config
	deps   Deps
	logger zerolog.Logger
}

// New creates a Recommender. Posters may be nil, in which case every item
// gets the placeholder image.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, deps Deps, logger zerolog.Logger) (*Recommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Ratings == nil || deps.Catalog == nil || deps.Synopsis == nil || deps.Embeddings == nil {
		return nil, errors.New("ratings, catalog, synopsis and embeddings providers are required")
	}
	return &Recommender{
		cfg:    cfg,
		deps:   deps,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the active configuration.
func (r *Recommender) Config() Config {
	return r.cfg
}

// log returns the component logger tagged with the request ID from ctx.
func (r *Recommender) log(ctx context.Context) *zerolog.Logger {
	l := r.logger
	if id := logging.RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	return &l
}

func (r *Recommender) snapshot() (*embedding.Snapshot, error) {
	snap := r.deps.Embeddings.Snapshot()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// IsNewUser reports whether the user has no ratings on record.
func (r *Recommender) IsNewUser(ctx context.Context, userID int64) (bool, error) {
	ratings, err := r.deps.Ratings.UserRatings(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to read ratings: %w", err)
	}
	return len(ratings) == 0, nil
}

// Titles returns the sorted unique catalog titles.
func (r *Recommender) Titles(ctx context.Context) ([]string, error) {
	return r.deps.Catalog.Titles(ctx)
}
