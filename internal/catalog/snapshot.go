// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package catalog

import (
	"slices"

	"github.com/tomtom215/animerec/internal/models"
)

// Snapshot is an immutable view of the source data. All methods are safe for
// concurrent use.
type Snapshot struct {
	anime    []models.Anime
	byID     map[int64]int
	byTitle  map[string]int
	titles   []string
	ratings  []models.Rating
	byUser   map[int64][]models.Rating
	synopsis map[int64]string

	duplicateTitles int
	fingerprint     string
}

// NewSnapshot indexes the given rows. Slices are retained and must not be
// modified afterwards.
func NewSnapshot(anime []models.Anime, ratings []models.Rating, synopses []models.Synopsis) *Snapshot {
	s := &Snapshot{
		anime:    anime,
		byID:     make(map[int64]int, len(anime)),
		byTitle:  make(map[string]int, len(anime)),
		ratings:  ratings,
		byUser:   make(map[int64][]models.Rating),
		synopsis: make(map[int64]string, len(synopses)),
	}

	for i, a := range anime {
		if _, ok := s.byID[a.AnimeID]; !ok {
			s.byID[a.AnimeID] = i
		}
		if a.Title == "" {
			continue
		}
		if _, ok := s.byTitle[a.Title]; ok {
			s.duplicateTitles++
			continue
		}
		s.byTitle[a.Title] = i
		s.titles = append(s.titles, a.Title)
	}
	slices.Sort(s.titles)

	for _, r := range ratings {
		s.byUser[r.UserID] = append(s.byUser[r.UserID], r)
	}

	for _, syn := range synopses {
		if _, ok := s.synopsis[syn.AnimeID]; !ok {
			s.synopsis[syn.AnimeID] = syn.Synopsis
		}
	}

	return s
}

// AnimeByID returns the catalog row for id.
func (s *Snapshot) AnimeByID(id int64) (models.Anime, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Anime{}, false
	}
	return s.anime[i], true
}

// AnimeByTitle returns the first catalog row whose title equals title.
func (s *Snapshot) AnimeByTitle(title string) (models.Anime, bool) {
	i, ok := s.byTitle[title]
	if !ok {
		return models.Anime{}, false
	}
	return s.anime[i], true
}

// Titles returns the sorted unique non-empty titles. The slice is shared.
func (s *Snapshot) Titles() []string {
	return s.titles
}

// Ratings returns every rating in file order. The slice is shared.
func (s *Snapshot) Ratings() []models.Rating {
	return s.ratings
}

// UserRatings returns the user's ratings in file order. The slice is shared.
func (s *Snapshot) UserRatings(userID int64) []models.Rating {
	return s.byUser[userID]
}

// Synopsis returns the synopsis for id, if any.
func (s *Snapshot) Synopsis(id int64) (string, bool) {
	syn, ok := s.synopsis[id]
	return syn, ok
}

// Stats reports row counts for logging and metrics.
func (s *Snapshot) Stats() (anime, ratings, users, synopses, duplicateTitles int) {
	return len(s.anime), len(s.ratings), len(s.byUser), len(s.synopsis), s.duplicateTitles
}
