// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/recommend"
)

// Recommender is the recommendation surface the handlers use.
// *recommend.Recommender implements it.
type Recommender interface {
	Titles(ctx context.Context) ([]string, error)
	IsNewUser(ctx context.Context, userID int64) (bool, error)
	SimilarAnime(ctx context.Context, title string, n int, neg bool) ([]models.SimilarAnime, error)
	SimilarUsers(ctx context.Context, userID int64, n int, neg bool) ([]models.SimilarUser, error)
	UserPreferences(ctx context.Context, userID int64) ([]models.Preference, error)
	UserCandidates(ctx context.Context, userID int64, n int) ([]models.Candidate, error)
	HybridWeighted(ctx context.Context, userID int64, userWeight, contentWeight float64, n int) ([]models.RecommendationItem, error)
	ColdStart(ctx context.Context, favorites []string, n int) ([]models.RecommendationItem, error)
}

// ReadinessCheck names a component that must be ready before the service
// reports ready.
type ReadinessCheck struct {
	Name  string
	Ready func() bool
}

// Handler serves the recommendation API.
type Handler struct {
	rec     Recommender
	cfg     recommend.Config
	timeout time.Duration
	checks  []ReadinessCheck
}

// NewHandler creates a Handler. cfg supplies n defaults and weights; each
// request runs with the given timeout.
func NewHandler(rec Recommender, cfg recommend.Config, timeout time.Duration, checks ...ReadinessCheck) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{rec: rec, cfg: cfg, timeout: timeout, checks: checks}
}

// requestContext bounds a request by the handler timeout.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}
