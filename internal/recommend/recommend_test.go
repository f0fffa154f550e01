// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"io"
	"math"
	"slices"
	"testing"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/models"
)

func TestNew_RequiresProviders(t *testing.T) {
	data, emb := newFixture(t)
	logger := logging.NewTestLogger(io.Discard)

	if _, err := New(DefaultConfig(), Deps{Ratings: data, Catalog: data, Synopsis: data}, logger); err == nil {
		t.Error("New() without embeddings error = nil, want error")
	}

	bad := DefaultConfig()
	bad.Concurrency = 0
	deps := Deps{Ratings: data, Catalog: data, Synopsis: data, Embeddings: emb}
	if _, err := New(bad, deps, logger); err == nil {
		t.Error("New() with invalid config error = nil, want error")
	}
	if _, err := New(DefaultConfig(), deps, logger); err != nil {
		t.Errorf("New() without posters error = %v, want nil", err)
	}
}

func TestUserPreferences(t *testing.T) {
	data, emb := newFixture(t)
	data.ratings = append(data.ratings,
		models.Rating{UserID: 30, AnimeID: 1, Rating: 10},
		models.Rating{UserID: 30, AnimeID: 1, Rating: 10},
		models.Rating{UserID: 30, AnimeID: 99, Rating: 10},
		models.Rating{UserID: 30, AnimeID: 2, Rating: 10},
	)
	r := newTestRecommender(t, data, emb, nil)

	tests := []struct {
		name   string
		userID int64
		want   []string
	}{
		{"above percentile only", 10, []string{"Naruto"}},
		{"equal ratings keep file order", 11, []string{"Death Note", "Naruto"}},
		{"single rating", 13, []string{"Steins;Gate"}},
		{"dedup and skip missing catalog rows", 30, []string{"Naruto", "Bleach"}},
		{"unknown user", 99, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs, err := r.UserPreferences(context.Background(), tt.userID)
			if err != nil {
				t.Fatalf("UserPreferences() error = %v", err)
			}
			var got []string
			for _, p := range prefs {
				got = append(got, p.Title)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("UserPreferences(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

func TestUserPreferences_SortedByRating(t *testing.T) {
	data, emb := newFixture(t)
	data.ratings = []models.Rating{
		{UserID: 40, AnimeID: 1, Rating: 9},
		{UserID: 40, AnimeID: 2, Rating: 10},
		{UserID: 40, AnimeID: 3, Rating: 9},
		{UserID: 40, AnimeID: 4, Rating: 10},
	}
	r := newTestRecommender(t, data, emb, nil)

	prefs, err := r.UserPreferences(context.Background(), 40)
	if err != nil {
		t.Fatalf("UserPreferences() error = %v", err)
	}
	// p75 of {9, 9, 10, 10} is 10.
	want := []int64{2, 4}
	var got []int64
	for _, p := range prefs {
		got = append(got, p.AnimeID)
		if p.Rating != 10 {
			t.Errorf("preference %d rating = %v, want 10", p.AnimeID, p.Rating)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestUserPreferences_ProviderError(t *testing.T) {
	data, emb := newFixture(t)
	data.ratingsErr = errors.New("disk gone")
	r := newTestRecommender(t, data, emb, nil)

	if _, err := r.UserPreferences(context.Background(), 10); err == nil {
		t.Error("UserPreferences() error = nil, want error")
	}
}

func TestSimilarUsers(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	tests := []struct {
		name string
		neg  bool
		n    int
		want []int64
	}{
		{"most similar", false, 2, []int64{11, 12}},
		{"least similar", true, 2, []int64{13, 12}},
		{"n larger than table", false, 10, []int64{11, 12, 13}},
		{"n zero", false, 0, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.SimilarUsers(context.Background(), 10, tt.n, tt.neg)
			if err != nil {
				t.Fatalf("SimilarUsers() error = %v", err)
			}
			ids := []int64{}
			for _, u := range got {
				ids = append(ids, u.UserID)
				if u.UserID == 10 {
					t.Error("result contains the query user")
				}
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("SimilarUsers() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestSimilarUsers_Similarity(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	got, err := r.SimilarUsers(context.Background(), 10, 1, false)
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if math.Abs(float64(got[0].Similarity)-0.8) > 1e-6 {
		t.Errorf("Similarity = %v, want 0.8", got[0].Similarity)
	}
}

func TestSimilarUsers_UnknownUser(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	_, err := r.SimilarUsers(context.Background(), 20, 2, false)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("SimilarUsers() error = %v, want *NotFoundError", err)
	}
}

func TestSimilarUsers_NotReady(t *testing.T) {
	data, _ := newFixture(t)
	r := newTestRecommender(t, data, &fakeEmbeddings{}, nil)

	if _, err := r.SimilarUsers(context.Background(), 10, 2, false); !errors.Is(err, ErrNotReady) {
		t.Errorf("SimilarUsers() error = %v, want ErrNotReady", err)
	}
}

func TestSimilarAnime(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	tests := []struct {
		name  string
		title string
		n     int
		neg   bool
		want  []string
	}{
		{"most similar", "Naruto", 2, false, []string{"Steins;Gate", "Bleach"}},
		{"least similar ascending", "Naruto", 2, true, []string{"Monster", "Death Note"}},
		{"ties by index", "Death Note", 5, false, []string{"One Piece", "Bleach", "Steins;Gate", "Naruto", "Monster"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.SimilarAnime(context.Background(), tt.title, tt.n, tt.neg)
			if err != nil {
				t.Fatalf("SimilarAnime() error = %v", err)
			}
			var titles []string
			for _, a := range got {
				titles = append(titles, a.Title)
			}
			if !slices.Equal(titles, tt.want) {
				t.Errorf("SimilarAnime(%q) = %v, want %v", tt.title, titles, tt.want)
			}
		})
	}
}

func TestSimilarAnime_UnknownTitle(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	_, err := r.SimilarAnime(context.Background(), "Nope", 2, false)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("SimilarAnime() error = %v, want *NotFoundError", err)
	}
}

func TestSimilarAnime_SkipsNeighborsWithoutCatalogRow(t *testing.T) {
	data, emb := newFixture(t)
	data.anime = slices.DeleteFunc(data.anime, func(a models.Anime) bool { return a.AnimeID == 6 })
	r := newTestRecommender(t, data, emb, nil)

	got, err := r.SimilarAnime(context.Background(), "Naruto", 2, false)
	if err != nil {
		t.Fatalf("SimilarAnime() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Bleach" {
		t.Errorf("SimilarAnime() = %+v, want only Bleach", got)
	}
}

func TestUntitledCatalogRowsAreSkipped(t *testing.T) {
	data, emb := newFixture(t)
	data.anime[5].Title = "" // Steins;Gate
	r := newTestRecommender(t, data, emb, nil)
	ctx := context.Background()

	items, err := r.ColdStart(ctx, []string{"Naruto"}, 4)
	if err != nil {
		t.Fatalf("ColdStart() error = %v", err)
	}
	if want := []string{"Bleach", "One Piece", "Death Note"}; !slices.Equal(titlesOf(items), want) {
		t.Errorf("ColdStart() = %v, want %v", titlesOf(items), want)
	}

	prefs, err := r.UserPreferences(ctx, 13)
	if err != nil {
		t.Fatalf("UserPreferences() error = %v", err)
	}
	if len(prefs) != 0 {
		t.Errorf("UserPreferences(13) = %+v, want none", prefs)
	}

	cands, err := r.UserCandidates(ctx, 10, 3)
	if err != nil {
		t.Fatalf("UserCandidates() error = %v", err)
	}
	for _, c := range cands {
		if c.Title == "" || c.AnimeID == 6 {
			t.Errorf("UserCandidates() includes untitled anime: %+v", c)
		}
	}
}

func TestUserCandidates(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	got, err := r.UserCandidates(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("UserCandidates() error = %v", err)
	}

	want := []models.Candidate{
		{AnimeID: 4, Title: "Death Note", Count: 2, Genres: "Thriller", Synopsis: "A notebook that kills."},
		{AnimeID: 5, Title: "Monster", Count: 1, Genres: "Thriller", Synopsis: ""},
	}
	if !slices.Equal(got, want) {
		t.Errorf("UserCandidates() = %+v, want %+v", got, want)
	}
}

func TestUserCandidates_UnknownUser(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	for _, id := range []int64{99, 20} {
		_, err := r.UserCandidates(context.Background(), id, 5)
		var uu *UnknownUserError
		if !errors.As(err, &uu) {
			t.Errorf("UserCandidates(%d) error = %v, want *UnknownUserError", id, err)
			continue
		}
		if uu.UserID != id {
			t.Errorf("UnknownUserError.UserID = %d, want %d", uu.UserID, id)
		}
	}
}

func TestAggregateCandidates_TiesKeepFirstSeen(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	lists := [][]models.Preference{
		{{AnimeID: 3, Title: "One Piece"}, {AnimeID: 1, Title: "Naruto"}},
		{{AnimeID: 2, Title: "Bleach"}, {AnimeID: 6, Title: "Steins;Gate"}},
		{{AnimeID: 6, Title: "Steins;Gate"}},
	}
	liked := map[string]bool{"Naruto": true}

	got := candidateTitles(r.aggregateCandidates(context.Background(), lists, liked, 10))
	want := []string{"Steins;Gate", "One Piece", "Bleach"}
	if !slices.Equal(got, want) {
		t.Errorf("aggregateCandidates() = %v, want %v", got, want)
	}
}

func TestIsNewUser(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	tests := []struct {
		userID int64
		want   bool
	}{
		{10, false},
		{20, false},
		{99, true},
	}
	for _, tt := range tests {
		got, err := r.IsNewUser(context.Background(), tt.userID)
		if err != nil {
			t.Fatalf("IsNewUser(%d) error = %v", tt.userID, err)
		}
		if got != tt.want {
			t.Errorf("IsNewUser(%d) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}
