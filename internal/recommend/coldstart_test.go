// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/animerec/internal/embedding"
	"github.com/tomtom215/animerec/internal/models"
)

func TestColdStart(t *testing.T) {
	tests := []struct {
		name      string
		favorites []string
		n         int
		want      []string
	}{
		{"single favorite", []string{"Naruto"}, 3, []string{"Steins;Gate", "Bleach", "One Piece"}},
		{"stops once n collected", []string{"Naruto", "Death Note"}, 3, []string{"Steins;Gate", "Bleach", "One Piece"}},
		{"dedups across favorites", []string{"Naruto", "Bleach"}, 4, []string{"Steins;Gate", "Bleach", "One Piece", "Naruto"}},
		{"skips unknown favorite", []string{"Unknown", "Death Note"}, 5, []string{"One Piece", "Bleach", "Steins;Gate", "Naruto", "Monster"}},
		{"only unknown favorites", []string{"Unknown"}, 5, []string{}},
		{"n zero", []string{"Naruto"}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, emb := newFixture(t)
			posters := &fakePosters{}
			r := newTestRecommender(t, data, emb, posters)

			got, err := r.ColdStart(context.Background(), tt.favorites, tt.n)
			if err != nil {
				t.Fatalf("ColdStart() error = %v", err)
			}
			if !slices.Equal(titlesOf(got), tt.want) {
				t.Errorf("ColdStart() = %v, want %v", titlesOf(got), tt.want)
			}
			if calls := posters.calls.Load(); calls != int64(len(tt.want)) {
				t.Errorf("poster calls = %d, want %d", calls, len(tt.want))
			}
		})
	}
}

func TestColdStart_StopsQueryingFavorites(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	if _, err := r.ColdStart(context.Background(), []string{"Naruto", "Death Note", "Monster"}, 2); err != nil {
		t.Fatalf("ColdStart() error = %v", err)
	}
	if calls := data.animeByTitleCalls.Load(); calls != 1 {
		t.Errorf("title lookups = %d, want 1", calls)
	}
}

func TestColdStart_SmallCatalog(t *testing.T) {
	anime, err := embedding.NewTable(embedding.KindAnime, [][]float32{
		{1, 0}, {0.8, 0.6}, {0.6, 0.8},
	}, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	users, err := embedding.NewTable(embedding.KindUser, [][]float32{{1, 0}}, []int64{1})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	data := &fakeData{anime: []models.Anime{
		{AnimeID: 1, Title: "Naruto"},
		{AnimeID: 2, Title: "Bleach"},
		{AnimeID: 3, Title: "One Piece"},
	}}
	r := newTestRecommender(t, data, &fakeEmbeddings{snap: &embedding.Snapshot{Users: users, Anime: anime}}, nil)

	got, err := r.ColdStart(context.Background(), []string{"Naruto"}, 3)
	if err != nil {
		t.Fatalf("ColdStart() error = %v", err)
	}
	want := []string{"Bleach", "One Piece"}
	if !slices.Equal(titlesOf(got), want) {
		t.Errorf("ColdStart() = %v, want %v", titlesOf(got), want)
	}
}

func TestColdStart_CanceledContext(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.ColdStart(ctx, []string{"Naruto"}, 3); !errors.Is(err, context.Canceled) {
		t.Errorf("ColdStart() error = %v, want context.Canceled", err)
	}
}

// slowPosters reports the peak number of concurrent lookups.
type slowPosters struct {
	mu       sync.Mutex
	inFlight int
	peak     int
}

func (s *slowPosters) PosterURL(_ context.Context, animeID int64) (string, error) {
	s.mu.Lock()
	s.inFlight++
	s.peak = max(s.peak, s.inFlight)
	s.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
	return fmt.Sprintf("https://img.test/%d.jpg", animeID), nil
}

func TestEnrich_PreservesOrderAndBoundsConcurrency(t *testing.T) {
	data, emb := newFixture(t)
	posters := &slowPosters{}
	r := newTestRecommender(t, data, emb, posters)

	picks := []pick{
		{Title: "Monster", AnimeID: 5},
		{Title: "Naruto", AnimeID: 1},
		{Title: "Steins;Gate", AnimeID: 6},
		{Title: "Bleach", AnimeID: 2},
		{Title: "Death Note", AnimeID: 4},
		{Title: "One Piece", AnimeID: 3},
	}
	got := r.enrich(context.Background(), picks)

	for i, p := range picks {
		if got[i].Title != p.Title {
			t.Errorf("item %d Title = %q, want %q", i, got[i].Title, p.Title)
		}
		want := fmt.Sprintf("https://img.test/%d.jpg", p.AnimeID)
		if got[i].ImageURL != want {
			t.Errorf("item %d ImageURL = %q, want %q", i, got[i].ImageURL, want)
		}
	}
	if posters.peak > r.Config().Concurrency {
		t.Errorf("peak concurrency = %d, want <= %d", posters.peak, r.Config().Concurrency)
	}
}

func TestEnrich_NoPosterLookup(t *testing.T) {
	data, emb := newFixture(t)
	r := newTestRecommender(t, data, emb, nil)

	got := r.enrich(context.Background(), []pick{{Title: "Naruto", AnimeID: 1}})
	if len(got) != 1 || got[0].ImageURL != DefaultPlaceholderURL {
		t.Errorf("enrich() = %+v, want placeholder image", got)
	}
}
