// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package recommend implements the hybrid anime recommender.
//
// # Architecture
//
// Two signals are blended:
//
//   - Collaborative: users similar to the target (by user embedding) and the
//     titles they rated in their top quartile
//   - Content: anime similar to those titles (by anime embedding)
//
// The pipeline for a known user is:
//
//	UserPreferences -> SimilarUsers -> UserCandidates (U)
//	U -> SimilarAnime per title (C)
//	rankHybrid(U, C) -> resolve ids -> enrich with posters
//
// Users without history use ColdStart, which expands a list of favorite
// titles by content similarity alone.
//
// # Determinism
//
// Ranking is synchronous and performs no I/O beyond the in-memory providers.
// Every sort is stable with explicit tie-breaks, so identical inputs give
// identical output. Poster enrichment runs afterwards as a separate bounded
// fan-out stage and only fills in image URLs; it never changes order.
//
// # Errors
//
// Errors use the typed taxonomy re-exported from the models package:
//
//   - UnknownUserError: no usable rating history
//   - NotFoundError: an id or title is absent; items are skipped
//   - InvalidIndexError: corrupted map or index; propagated
//   - ExternalServiceError: poster lookup failed; replaced by placeholder
//
// # Thread Safety
//
// Recommender is safe for concurrent use. It holds no mutable state; data
// comes from providers that publish immutable snapshots.
package recommend
