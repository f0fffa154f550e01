// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// ColdStart recommends up to n titles similar to the given favorites, for
// users without rating history. Favorites are expanded in input order and
// collection stops as soon as n unique titles are found, so at most n
// posters are fetched. Favorites that cannot be resolved are logged and
// skipped.
func (r *Recommender) ColdStart(ctx context.Context, favorites []string, n int) ([]models.RecommendationItem, error) {
	start := time.Now()
	picks, err := r.coldStartPicks(ctx, favorites, n)
	if err != nil {
		metrics.RecordRecommendationError(metrics.ModeColdStart, errorType(err))
		return nil, err
	}
	items := r.enrich(ctx, picks)
	metrics.RecordRecommendation(metrics.ModeColdStart, time.Since(start), len(items))
	return items, nil
}

func (r *Recommender) coldStartPicks(ctx context.Context, favorites []string, n int) ([]pick, error) {
	picks := make([]pick, 0, max(n, 0))
	if n <= 0 {
		return picks, nil
	}
	seen := make(map[string]bool)

	for _, fav := range favorites {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		similar, err := r.SimilarAnime(ctx, fav, n, false)
		if err != nil {
			if isInvalidIndex(err) {
				return nil, err
			}
			metrics.RecordSkipped("favorite_failed")
			r.log(ctx).Warn().Err(err).Str("favorite", fav).Msg("Could not fetch similar anime for favorite")
			continue
		}

		for _, s := range similar {
			if !seen[s.Title] {
				seen[s.Title] = true
				picks = append(picks, pick{Title: s.Title, AnimeID: s.AnimeID})
			}
			if len(picks) >= n {
				return picks, nil
			}
		}
	}
	return picks, nil
}
