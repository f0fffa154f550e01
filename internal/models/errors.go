// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"fmt"
	"strconv"
)

// UnknownUserError is returned when a user has no usable rating history.
type UnknownUserError struct {
	UserID int64
}

// Error implements the error interface.
func (e *UnknownUserError) Error() string {
	return "user " + strconv.FormatInt(e.UserID, 10) + " not found or has insufficient data"
}

// NotFoundError is returned when an id, index or title is absent from a map
// or the catalog. Kind names the lookup, e.g. "anime title" or "user id".
type NotFoundError struct {
	Kind string
	Key  string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Kind + " not found: " + e.Key
}

// NewNotFound builds a NotFoundError for a key of any printable type.
func NewNotFound(kind string, key any) *NotFoundError {
	return &NotFoundError{Kind: kind, Key: fmt.Sprint(key)}
}

// InvalidIndexError is returned when an embedding index is outside the
// table. It indicates a corrupted map or index, not bad user input.
type InvalidIndexError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("embedding index %d out of range [0, %d)", e.Index, e.Len)
}

// ExternalServiceError wraps a failure of an outbound dependency such as the
// poster API.
type ExternalServiceError struct {
	Service string
	Err     error
}

// Error implements the error interface.
func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return e.Service + ": " + e.Err.Error()
	}
	return e.Service + ": request failed"
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
