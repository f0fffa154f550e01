// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"errors"

	"github.com/tomtom215/animerec/internal/models"
)

// Error taxonomy. The types live in models so that the catalog and embedding
// packages can return them without importing recommend.
type (
	UnknownUserError     = models.UnknownUserError
	NotFoundError        = models.NotFoundError
	InvalidIndexError    = models.InvalidIndexError
	ExternalServiceError = models.ExternalServiceError
)

// ErrNotReady is returned when embeddings have not been loaded yet.
var ErrNotReady = errors.New("embeddings not loaded")

// isNotFound reports whether err is a NotFoundError.
func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// isInvalidIndex reports whether err is an InvalidIndexError.
func isInvalidIndex(err error) bool {
	var inv *InvalidIndexError
	return errors.As(err, &inv)
}

// isUnknownUser reports whether err is an UnknownUserError.
func isUnknownUser(err error) bool {
	var uu *UnknownUserError
	return errors.As(err, &uu)
}
