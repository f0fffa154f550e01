// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package poster resolves anime poster image URLs from the Jikan API.
//
// A lookup goes cache -> circuit breaker -> rate limiter -> HTTP. Only
// successful lookups are cached; failures surface as
// *models.ExternalServiceError so callers can substitute a placeholder.
//
// Cache backends:
//
//   - memory: in-process LRU with TTL (default)
//   - badger: persistent BadgerDB store with per-entry TTL
//   - none: every lookup goes upstream
//
// Service is safe for concurrent use.
package poster
