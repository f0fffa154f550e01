// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package api exposes the recommender over HTTP using the Chi router.
//
// Routes:
//
//	GET  /api/v1/health/live
//	GET  /api/v1/health/ready
//	GET  /api/v1/titles
//	GET  /api/v1/anime/similar?title=&n=&neg=
//	GET  /api/v1/users/{id}/similar?n=&neg=
//	GET  /api/v1/users/{id}/preferences
//	GET  /api/v1/users/{id}/candidates?n=
//	GET  /api/v1/users/{id}/recommendations?n=&user_weight=&content_weight=
//	POST /api/v1/recommendations/cold-start
//	POST /api/v1/recommendations
//	GET  /metrics
//
// Every response uses the APIResponse envelope:
//
//	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "..."}}
//	{"success": false, "error": {"code": "UNKNOWN_USER", "message": "...", "request_id": "..."}}
//
// Domain errors map to status codes in writeRecommendError.
package api
