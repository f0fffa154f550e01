// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"cmp"
	"context"
	"slices"

	"github.com/tomtom215/animerec/internal/models"
)

// UserCandidates returns up to n collaborative candidates for the user:
// titles liked by the n most similar users and not already liked by the
// user, ranked by how many of those users liked them.
func (r *Recommender) UserCandidates(ctx context.Context, userID int64, n int) ([]models.Candidate, error) {
	prefs, err := r.UserPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(prefs) == 0 {
		return nil, &UnknownUserError{UserID: userID}
	}
	return r.userCandidates(ctx, userID, prefs, n)
}

func (r *Recommender) userCandidates(ctx context.Context, userID int64, prefs []models.Preference, n int) ([]models.Candidate, error) {
	similar, err := r.SimilarUsers(ctx, userID, n, false)
	if err != nil {
		if isNotFound(err) {
			r.log(ctx).Warn().Int64("user_id", userID).Msg("User has ratings but no embedding")
			return nil, &UnknownUserError{UserID: userID}
		}
		return nil, err
	}

	liked := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		liked[p.Title] = true
	}

	var lists [][]models.Preference
	for _, su := range similar {
		theirs, err := r.UserPreferences(ctx, su.UserID)
		if err != nil {
			return nil, err
		}
		lists = append(lists, theirs)
	}

	return r.aggregateCandidates(ctx, lists, liked, n), nil
}

// aggregateCandidates counts titles across the similar users' preference
// lists, most similar user first, skipping titles in liked. Ties in count
// keep first-seen order.
func (r *Recommender) aggregateCandidates(ctx context.Context, lists [][]models.Preference, liked map[string]bool, n int) []models.Candidate {
	index := make(map[string]int)
	var candidates []models.Candidate

	for _, prefs := range lists {
		for _, p := range prefs {
			if liked[p.Title] {
				continue
			}
			if i, ok := index[p.Title]; ok {
				candidates[i].Count++
				continue
			}
			index[p.Title] = len(candidates)
			candidates = append(candidates, models.Candidate{
				AnimeID: p.AnimeID,
				Title:   p.Title,
				Count:   1,
				Genres:  p.Genres,
			})
		}
	}

	slices.SortStableFunc(candidates, func(a, b models.Candidate) int {
		return cmp.Compare(b.Count, a.Count)
	})
	candidates = truncate(candidates, n)

	for i := range candidates {
		candidates[i].Synopsis = r.synopsis(ctx, candidates[i].AnimeID)
	}
	return candidates
}

// synopsis returns the synopsis for id, or "" if none is available.
func (r *Recommender) synopsis(ctx context.Context, id int64) string {
	syn, err := r.deps.Synopsis.Synopsis(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			r.log(ctx).Warn().Err(err).Int64("anime_id", id).Msg("Synopsis lookup failed")
		}
		return ""
	}
	return syn
}

// candidateTitles extracts titles in rank order.
func candidateTitles(candidates []models.Candidate) []string {
	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}
	return titles
}
