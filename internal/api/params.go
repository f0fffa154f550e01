// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// userIDParam parses the {id} path segment.
func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

// nParam parses the n query parameter. Absent returns 0, which the
// recommender config maps to its default.
func nParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrInvalidN
	}
	return n, nil
}

// negParam parses the neg query parameter, defaulting to false.
func negParam(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("neg")
	if raw == "" {
		return false, nil
	}
	neg, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ErrInvalidNeg
	}
	return neg, nil
}

// weightParam parses a non-negative float query parameter.
func weightParam(r *http.Request, key string, defaultValue float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, ErrInvalidWeight
	}
	return w, nil
}
