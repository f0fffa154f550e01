// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"

	"github.com/tomtom215/animerec/internal/embedding"
	"github.com/tomtom215/animerec/internal/models"
)

// RatingsProvider serves the ratings table.
type RatingsProvider interface {
	// Ratings returns every rating in file order.
	Ratings(ctx context.Context) ([]models.Rating, error)

	// UserRatings returns the user's ratings in file order; empty if none.
	UserRatings(ctx context.Context, userID int64) ([]models.Rating, error)
}

// CatalogProvider serves anime catalog lookups.
type CatalogProvider interface {
	// AnimeByID returns a *NotFoundError for unknown ids.
	AnimeByID(ctx context.Context, id int64) (models.Anime, error)

	// AnimeByTitle returns the first catalog row with the title, or a
	// *NotFoundError.
	AnimeByTitle(ctx context.Context, title string) (models.Anime, error)

	// Titles returns sorted unique titles.
	Titles(ctx context.Context) ([]string, error)
}

// SynopsisProvider serves synopsis text.
type SynopsisProvider interface {
	// Synopsis returns a *NotFoundError when none is on record.
	Synopsis(ctx context.Context, animeID int64) (string, error)
}

// EmbeddingProvider serves the current embedding snapshot.
type EmbeddingProvider interface {
	// Snapshot returns nil before the first load.
	Snapshot() *embedding.Snapshot
}

// PosterLookup resolves a poster image URL for an anime. Failures should be
// returned as *ExternalServiceError.
type PosterLookup interface {
	PosterURL(ctx context.Context, animeID int64) (string, error)
}

// Deps bundles the providers a Recommender needs.
type Deps struct {
	Ratings    RatingsProvider
	Catalog    CatalogProvider
	Synopsis   SynopsisProvider
	Embeddings EmbeddingProvider
	Posters    PosterLookup
}
