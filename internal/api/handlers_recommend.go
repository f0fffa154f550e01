// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
	"github.com/tomtom215/animerec/internal/validation"
)

// Messages for the combined endpoint when no strategy applies.
const (
	msgNoInput    = "Please enter a user ID or select favorite anime titles."
	msgNewUserFmt = "No history for user %d. Try selecting your favorite anime titles below."
)

// Titles returns the sorted unique catalog titles for the favorites picker.
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	titles, err := h.rec.Titles(ctx)
	if err != nil {
		writeRecommendError(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessList(titles, len(titles))
}

// SimilarAnime returns anime similar (or with neg=true, dissimilar) to ?title.
func (h *Handler) SimilarAnime(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		NewResponseWriter(w, r).BadRequest("title is required")
		return
	}
	n, neg, ok := h.listParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	similar, err := h.rec.SimilarAnime(ctx, title, n, neg)
	if err != nil {
		writeRecommendError(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessList(similar, len(similar))
}

// SimilarUsers returns users similar (or with neg=true, dissimilar) to {id}.
func (h *Handler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	n, neg, ok := h.listParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	similar, err := h.rec.SimilarUsers(ctx, userID, n, neg)
	if err != nil {
		writeRecommendError(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessList(similar, len(similar))
}

// UserPreferences returns the titles {id} rated in their top quartile.
func (h *Handler) UserPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	prefs, err := h.rec.UserPreferences(ctx, userID)
	if err != nil {
		writeRecommendError(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessList(prefs, len(prefs))
}

// UserCandidates returns collaborative candidates for {id}.
func (h *Handler) UserCandidates(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	n, err := nParam(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	candidates, err := h.rec.UserCandidates(ctx, userID, h.cfg.ClampN(n))
	if err != nil {
		writeRecommendError(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessList(candidates, len(candidates))
}

// UserRecommendations returns hybrid recommendations for {id}. The
// user_weight and content_weight query parameters override the defaults.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	n, err := nParam(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	userWeight, err := weightParam(r, "user_weight", h.cfg.UserWeight)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	contentWeight, err := weightParam(r, "content_weight", h.cfg.ContentWeight)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	items, err := h.rec.HybridWeighted(ctx, userID, userWeight, contentWeight, h.cfg.ClampN(n))
	if err != nil {
		writeRecommendError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(models.RecommendResponse{
		Strategy:        metrics.ModeHybrid,
		Recommendations: items,
	})
}

// ColdStart returns recommendations for a list of favorite titles.
func (h *Handler) ColdStart(w http.ResponseWriter, r *http.Request) {
	var req models.ColdStartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	items, err := h.rec.ColdStart(ctx, req.Favorites, h.cfg.ClampN(req.N))
	if err != nil {
		writeRecommendError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(models.RecommendResponse{
		Strategy:        metrics.ModeColdStart,
		Recommendations: items,
	})
}

// Recommend routes to hybrid when user_id is set and to cold start when
// only favorites are set. A user with no ratings, or a request with
// neither field, gets a message and no recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	n := h.cfg.ClampN(req.N)

	ctx, cancel := h.requestContext(r)
	defer cancel()

	rw := NewResponseWriter(w, r)
	switch {
	case req.UserID != nil:
		userID := *req.UserID
		isNew, err := h.rec.IsNewUser(ctx, userID)
		if err != nil {
			writeRecommendError(w, r, err)
			return
		}
		if isNew {
			rw.Success(models.RecommendResponse{
				Recommendations: []models.RecommendationItem{},
				Message:         fmt.Sprintf(msgNewUserFmt, userID),
			})
			return
		}
		items, err := h.rec.HybridWeighted(ctx, userID, h.cfg.UserWeight, h.cfg.ContentWeight, n)
		if err != nil {
			writeRecommendError(w, r, err)
			return
		}
		rw.Success(models.RecommendResponse{Strategy: metrics.ModeHybrid, Recommendations: items})

	case len(req.Favorites) > 0:
		items, err := h.rec.ColdStart(ctx, req.Favorites, n)
		if err != nil {
			writeRecommendError(w, r, err)
			return
		}
		rw.Success(models.RecommendResponse{Strategy: metrics.ModeColdStart, Recommendations: items})

	default:
		rw.Success(models.RecommendResponse{
			Recommendations: []models.RecommendationItem{},
			Message:         msgNoInput,
		})
	}
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := userIDParam(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return 0, false
	}
	return id, true
}

// listParams parses n (clamped) and neg.
func (h *Handler) listParams(w http.ResponseWriter, r *http.Request) (n int, neg bool, ok bool) {
	n, err := nParam(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return 0, false, false
	}
	neg, err = negParam(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return 0, false, false
	}
	return h.cfg.ClampN(n), neg, true
}

// decodeAndValidate decodes a JSON body into dst and validates it, writing
// a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid JSON body")
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
