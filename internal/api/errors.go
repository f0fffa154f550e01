// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/recommend"
)

// Request parameter errors
var (
	// ErrInvalidUserID indicates a user id path segment that is not a non-negative integer
	ErrInvalidUserID = errors.New("user id must be a non-negative integer")

	// ErrInvalidN indicates an n parameter that is not a non-negative integer
	ErrInvalidN = errors.New("n must be a non-negative integer")

	// ErrInvalidNeg indicates a neg parameter that is not a boolean
	ErrInvalidNeg = errors.New("neg must be a boolean")

	// ErrInvalidWeight indicates a weight that is not a non-negative number
	ErrInvalidWeight = errors.New("weights must be non-negative numbers")
)

// writeRecommendError maps a recommender error to a response.
func writeRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var (
		unknown  *recommend.UnknownUserError
		notFound *recommend.NotFoundError
		invalid  *recommend.InvalidIndexError
	)
	switch {
	case errors.As(err, &unknown):
		rw.Error(http.StatusNotFound, ErrCodeUnknownUser, unknown.Error())
	case errors.As(err, &notFound):
		rw.NotFound(notFound.Error())
	case errors.Is(err, recommend.ErrNotReady):
		rw.ServiceUnavailable("Recommendation data is still loading")
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Recommendation request timed out")
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out")
	case errors.Is(err, context.Canceled):
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled")
	case errors.As(err, &invalid):
		logging.Ctx(r.Context()).Error().Err(err).Msg("Embedding index corrupted")
		rw.InternalError("Recommendation data is inconsistent")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation failed")
		rw.InternalError("Failed to compute recommendations")
	}
}
