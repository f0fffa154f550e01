// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

// ColdStartRequest is the body of POST /api/v1/recommendations/cold-start.
type ColdStartRequest struct {
	Favorites []string `json:"favorites" validate:"required,min=1,max=50,dive,required,notblank,max=500"`
	N         int      `json:"n,omitempty" validate:"omitempty,min=1"`
}

// RecommendRequest is the body of POST /api/v1/recommendations. Either
// UserID or Favorites selects the strategy; UserID wins when both are set.
type RecommendRequest struct {
	UserID    *int64   `json:"user_id,omitempty" validate:"omitempty,min=0"`
	Favorites []string `json:"favorites,omitempty" validate:"omitempty,max=50,dive,required,notblank,max=500"`
	N         int      `json:"n,omitempty" validate:"omitempty,min=1"`
}

// RecommendResponse is the data payload of the combined recommendation
// endpoint. Message is set instead of Recommendations when no strategy
// applies.
type RecommendResponse struct {
	Strategy        string               `json:"strategy,omitempty"` // hybrid, cold_start
	Recommendations []RecommendationItem `json:"recommendations"`
	Message         string               `json:"message,omitempty"`
}
