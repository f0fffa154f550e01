// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// preferencePercentile is the rating percentile a title must reach to count
// as liked.
const preferencePercentile = 75

// UserPreferences returns the titles the user rated at or above their own
// 75th percentile, highest rating first. Equal ratings keep file order.
// A user with no ratings yields an empty result, not an error.
func (r *Recommender) UserPreferences(ctx context.Context, userID int64) ([]models.Preference, error) {
	ratings, err := r.deps.Ratings.UserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings for user %d: %w", userID, err)
	}
	return r.preferencesFrom(ctx, ratings)
}

func (r *Recommender) preferencesFrom(ctx context.Context, ratings []models.Rating) ([]models.Preference, error) {
	liked := likedRatings(ratings)

	prefs := make([]models.Preference, 0, len(liked))
	seen := make(map[int64]bool, len(liked))
	for _, rt := range liked {
		if seen[rt.AnimeID] {
			continue
		}
		seen[rt.AnimeID] = true

		anime, err := r.deps.Catalog.AnimeByID(ctx, rt.AnimeID)
		if err != nil {
			if isNotFound(err) {
				metrics.RecordSkipped("not_in_catalog")
				continue
			}
			return nil, fmt.Errorf("failed to resolve anime %d: %w", rt.AnimeID, err)
		}
		if anime.Title == "" {
			metrics.RecordSkipped("untitled")
			continue
		}
		prefs = append(prefs, models.Preference{
			AnimeID: anime.AnimeID,
			Title:   anime.Title,
			Genres:  anime.Genres,
			Rating:  rt.Rating,
		})
	}
	return prefs, nil
}

// likedRatings keeps ratings at or above the user's 75th percentile, sorted
// by rating descending with file order preserved for ties.
func likedRatings(ratings []models.Rating) []models.Rating {
	values := make([]float64, len(ratings))
	for i, rt := range ratings {
		values[i] = rt.Rating
	}
	threshold, ok := Percentile(values, preferencePercentile)
	if !ok {
		return nil
	}

	liked := make([]models.Rating, 0, len(ratings))
	for _, rt := range ratings {
		if rt.Rating >= threshold {
			liked = append(liked, rt)
		}
	}
	slices.SortStableFunc(liked, func(a, b models.Rating) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return liked
}
