// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/animerec/internal/embedding"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// SimilarUsers returns up to n users most (or, with neg, least) similar to
// userID, excluding the user. Returns *NotFoundError if the user has no
// embedding.
func (r *Recommender) SimilarUsers(ctx context.Context, userID int64, n int, neg bool) ([]models.SimilarUser, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	users := snap.Users

	idx, err := users.Index(userID)
	if err != nil {
		return nil, err
	}
	nbrs, err := embedding.Nearest(users, idx, n, direction(neg))
	if err != nil {
		r.log(ctx).Error().Err(err).Int64("user_id", userID).Msg("User neighbor search failed")
		return nil, err
	}
	nbrs = embedding.DropSelf(nbrs, idx)

	out := make([]models.SimilarUser, 0, len(nbrs))
	for _, nb := range nbrs {
		id, err := users.ID(nb.Index)
		if err != nil {
			return nil, fmt.Errorf("user table decode: %w", err)
		}
		out = append(out, models.SimilarUser{UserID: id, Similarity: nb.Similarity})
	}
	return truncate(out, n), nil
}

// SimilarAnime returns up to n anime most (or, with neg, least) similar to
// the given title, excluding the title itself. The title resolves to its
// first catalog row. Neighbors without a catalog row are skipped.
func (r *Recommender) SimilarAnime(ctx context.Context, title string, n int, neg bool) ([]models.SimilarAnime, error) {
	anime, err := r.deps.Catalog.AnimeByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return r.similarAnimeByID(ctx, anime.AnimeID, n, neg)
}

func (r *Recommender) similarAnimeByID(ctx context.Context, animeID int64, n int, neg bool) ([]models.SimilarAnime, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	table := snap.Anime

	idx, err := table.Index(animeID)
	if err != nil {
		metrics.RecordSkipped("not_in_embeddings")
		return nil, err
	}
	nbrs, err := embedding.Nearest(table, idx, n, direction(neg))
	if err != nil {
		r.log(ctx).Error().Err(err).Int64("anime_id", animeID).Msg("Anime neighbor search failed")
		return nil, err
	}
	nbrs = embedding.DropSelf(nbrs, idx)

	out := make([]models.SimilarAnime, 0, len(nbrs))
	for _, nb := range nbrs {
		id, err := table.ID(nb.Index)
		if err != nil {
			return nil, fmt.Errorf("anime table decode: %w", err)
		}
		a, err := r.deps.Catalog.AnimeByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				metrics.RecordSkipped("not_in_catalog")
				r.log(ctx).Debug().Int64("anime_id", id).Msg("Similar anime has no catalog row")
				continue
			}
			return nil, err
		}
		if a.Title == "" {
			metrics.RecordSkipped("untitled")
			r.log(ctx).Debug().Int64("anime_id", id).Msg("Similar anime has no title")
			continue
		}
		out = append(out, models.SimilarAnime{
			AnimeID:    id,
			Title:      a.Title,
			Similarity: nb.Similarity,
			Genres:     a.Genres,
		})
	}
	return truncate(out, n), nil
}

func direction(neg bool) embedding.Direction {
	if neg {
		return embedding.Negative
	}
	return embedding.Positive
}

// truncate caps s at n items. Search returns n+1 rows; if the query row was
// displaced by a tie it is not dropped and one extra row remains.
func truncate[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
