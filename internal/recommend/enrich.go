// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// pick is a ranked title awaiting its poster.
type pick struct {
	Title   string
	AnimeID int64
}

// enrich fetches posters for picks with at most cfg.Concurrency lookups in
// flight. Output order matches picks. A failed lookup yields the placeholder
// and is logged; it never fails the request.
func (r *Recommender) enrich(ctx context.Context, picks []pick) []models.RecommendationItem {
	items := make([]models.RecommendationItem, len(picks))
	for i, p := range picks {
		items[i] = models.RecommendationItem{Title: p.Title, ImageURL: r.cfg.PlaceholderURL}
	}
	if len(picks) == 0 {
		return items
	}
	if r.deps.Posters == nil {
		for range picks {
			metrics.RecordPosterLookup("placeholder")
		}
		return items
	}

	var g errgroup.Group
	g.SetLimit(r.cfg.Concurrency)
	for i, p := range picks {
		g.Go(func() error {
			url, err := r.deps.Posters.PosterURL(ctx, p.AnimeID)
			if err != nil || url == "" {
				r.log(ctx).Warn().Err(err).
					Int64("anime_id", p.AnimeID).
					Str("title", p.Title).
					Msg("Poster lookup failed, using placeholder")
				metrics.RecordPosterLookup("placeholder")
				return nil
			}
			items[i].ImageURL = url
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	return items
}
