// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// Hybrid recommends n titles for a known user using the configured weights.
func (r *Recommender) Hybrid(ctx context.Context, userID int64, n int) ([]models.RecommendationItem, error) {
	return r.HybridWeighted(ctx, userID, r.cfg.UserWeight, r.cfg.ContentWeight, n)
}

// HybridWeighted recommends n titles for a known user. Each collaborative
// candidate scores userWeight once; each time a title appears among the
// content neighbors of a candidate it scores contentWeight.
//
// Returns *UnknownUserError if the user has no usable rating history.
func (r *Recommender) HybridWeighted(ctx context.Context, userID int64, userWeight, contentWeight float64, n int) ([]models.RecommendationItem, error) {
	start := time.Now()
	items, err := r.hybrid(ctx, userID, userWeight, contentWeight, n)
	if err != nil {
		metrics.RecordRecommendationError(metrics.ModeHybrid, errorType(err))
		return nil, err
	}
	metrics.RecordRecommendation(metrics.ModeHybrid, time.Since(start), len(items))
	return items, nil
}

func (r *Recommender) hybrid(ctx context.Context, userID int64, userWeight, contentWeight float64, n int) ([]models.RecommendationItem, error) {
	if n <= 0 {
		return []models.RecommendationItem{}, nil
	}

	prefs, err := r.UserPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(prefs) == 0 {
		return nil, &UnknownUserError{UserID: userID}
	}

	candidates, err := r.userCandidates(ctx, userID, prefs, n)
	if err != nil {
		return nil, err
	}
	userTitles := candidateTitles(candidates)

	var contentTitles []string
	for _, c := range candidates {
		similar, err := r.similarAnimeByID(ctx, c.AnimeID, n, false)
		if err != nil {
			if isInvalidIndex(err) {
				return nil, err
			}
			r.log(ctx).Debug().Err(err).Str("title", c.Title).Msg("No similar anime for candidate")
			continue
		}
		for _, s := range similar {
			contentTitles = append(contentTitles, s.Title)
		}
	}

	ranked := rankHybrid(userTitles, contentTitles, userWeight, contentWeight, n)

	picks := make([]pick, 0, len(ranked))
	for _, title := range ranked {
		a, err := r.deps.Catalog.AnimeByTitle(ctx, title)
		if err != nil {
			metrics.RecordSkipped("title_not_found")
			r.log(ctx).Debug().Str("title", title).Msg("No catalog row for ranked title")
			continue
		}
		picks = append(picks, pick{Title: title, AnimeID: a.AnimeID})
	}

	r.log(ctx).Debug().
		Int64("user_id", userID).
		Int("user_candidates", len(userTitles)).
		Int("content_candidates", len(contentTitles)).
		Int("results", len(picks)).
		Msg("Hybrid ranking complete")

	return r.enrich(ctx, picks), nil
}

// rankHybrid merges collaborative titles u and content titles c into at
// most n unique titles ordered by score descending. Each title in u adds
// userWeight; each occurrence in c adds contentWeight. Equal scores keep
// first-insertion order, with u inserted before c.
func rankHybrid(u, c []string, userWeight, contentWeight float64, n int) []string {
	scores := make(map[string]float64, len(u)+len(c))
	var order []string
	add := func(title string, w float64) {
		if _, ok := scores[title]; !ok {
			order = append(order, title)
		}
		scores[title] += w
	}
	for _, t := range u {
		add(t, userWeight)
	}
	for _, t := range c {
		add(t, contentWeight)
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(scores[b], scores[a])
	})

	// order holds unique titles, so the top-2n cut followed by
	// deduplication reduces to the first n.
	return truncate(order, n)
}

func errorType(err error) string {
	switch {
	case err == nil:
		return ""
	case isUnknownUser(err):
		return "unknown_user"
	case isInvalidIndex(err):
		return "invalid_index"
	default:
		return "internal"
	}
}
