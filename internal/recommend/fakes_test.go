// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/animerec/internal/embedding"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/models"
)

// fakeData implements RatingsProvider, CatalogProvider and SynopsisProvider.
type fakeData struct {
	anime    []models.Anime
	ratings  []models.Rating
	synopses map[int64]string

	ratingsErr        error
	userRatingsCalls  atomic.Int64
	animeByTitleCalls atomic.Int64
}

func (f *fakeData) Ratings(_ context.Context) ([]models.Rating, error) {
	return f.ratings, f.ratingsErr
}

func (f *fakeData) UserRatings(_ context.Context, userID int64) ([]models.Rating, error) {
	f.userRatingsCalls.Add(1)
	if f.ratingsErr != nil {
		return nil, f.ratingsErr
	}
	var out []models.Rating
	for _, r := range f.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeData) AnimeByID(_ context.Context, id int64) (models.Anime, error) {
	for _, a := range f.anime {
		if a.AnimeID == id {
			return a, nil
		}
	}
	return models.Anime{}, models.NewNotFound("anime id", id)
}

func (f *fakeData) AnimeByTitle(_ context.Context, title string) (models.Anime, error) {
	f.animeByTitleCalls.Add(1)
	for _, a := range f.anime {
		if a.Title == title {
			return a, nil
		}
	}
	return models.Anime{}, models.NewNotFound("anime title", title)
}

func (f *fakeData) Titles(_ context.Context) ([]string, error) {
	var titles []string
	for _, a := range f.anime {
		if a.Title != "" && !slices.Contains(titles, a.Title) {
			titles = append(titles, a.Title)
		}
	}
	slices.Sort(titles)
	return titles, nil
}

func (f *fakeData) Synopsis(_ context.Context, animeID int64) (string, error) {
	if s, ok := f.synopses[animeID]; ok {
		return s, nil
	}
	return "", models.NewNotFound("synopsis", animeID)
}

type fakeEmbeddings struct {
	snap *embedding.Snapshot
}

func (f *fakeEmbeddings) Snapshot() *embedding.Snapshot { return f.snap }

// fakePosters returns https://img.test/<id>.jpg, failing for ids in fail.
type fakePosters struct {
	fail  map[int64]bool
	calls atomic.Int64
}

func (f *fakePosters) PosterURL(_ context.Context, animeID int64) (string, error) {
	f.calls.Add(1)
	if f.fail[animeID] {
		return "", &models.ExternalServiceError{Service: "jikan", Err: errors.New("status 500")}
	}
	return fmt.Sprintf("https://img.test/%d.jpg", animeID), nil
}

// Anime vectors are unit length in two dimensions:
//
//	1 Naruto      (1, 0)
//	2 Bleach      (0.8, 0.6)
//	3 One Piece   (0.6, 0.8)
//	4 Death Note  (0, 1)
//	5 Monster     (-1, 0)
//	6 Steins;Gate (0.96, 0.28)
//
// Users 10..13 follow the same pattern; user 20 has ratings and no vector.
func newFixture(t *testing.T) (*fakeData, *fakeEmbeddings) {
	t.Helper()

	anime, err := embedding.NewTable(embedding.KindAnime, [][]float32{
		{1, 0}, {0.8, 0.6}, {0.6, 0.8}, {0, 1}, {-1, 0}, {0.96, 0.28},
	}, []int64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("NewTable(anime) error = %v", err)
	}
	users, err := embedding.NewTable(embedding.KindUser, [][]float32{
		{1, 0}, {0.8, 0.6}, {0.6, 0.8}, {-1, 0},
	}, []int64{10, 11, 12, 13})
	if err != nil {
		t.Fatalf("NewTable(users) error = %v", err)
	}

	data := &fakeData{
		anime: []models.Anime{
			{AnimeID: 1, Title: "Naruto", Genres: "Action"},
			{AnimeID: 2, Title: "Bleach", Genres: "Action"},
			{AnimeID: 3, Title: "One Piece", Genres: "Adventure"},
			{AnimeID: 4, Title: "Death Note", Genres: "Thriller"},
			{AnimeID: 5, Title: "Monster", Genres: "Thriller"},
			{AnimeID: 6, Title: "Steins;Gate", Genres: "Sci-Fi"},
		},
		ratings: []models.Rating{
			{UserID: 10, AnimeID: 3, Rating: 9},
			{UserID: 10, AnimeID: 2, Rating: 5},
			{UserID: 10, AnimeID: 1, Rating: 10},
			{UserID: 11, AnimeID: 4, Rating: 10},
			{UserID: 11, AnimeID: 1, Rating: 10},
			{UserID: 12, AnimeID: 4, Rating: 8},
			{UserID: 12, AnimeID: 5, Rating: 8},
			{UserID: 13, AnimeID: 6, Rating: 7},
			{UserID: 20, AnimeID: 1, Rating: 8},
		},
		synopses: map[int64]string{4: "A notebook that kills."},
	}
	return data, &fakeEmbeddings{snap: &embedding.Snapshot{Users: users, Anime: anime}}
}

func newTestRecommender(t *testing.T, data *fakeData, emb *fakeEmbeddings, posters PosterLookup) *Recommender {
	t.Helper()
	deps := Deps{Ratings: data, Catalog: data, Synopsis: data, Embeddings: emb, Posters: posters}
	r, err := New(DefaultConfig(), deps, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func titlesOf(items []models.RecommendationItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
