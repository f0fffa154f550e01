// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package logging provides zerolog-based structured logging for the
// recommender.
//
// # Overview
//
// A single global logger is configured once at startup with Init. Output is
// JSON by default and human-readable with Format "console".
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("title", title).Msg("Resolved favorite")
//
// Components take a child logger so every event carries its source:
//
//	logger := logging.WithComponent("catalog")
//
// # Request Context
//
// The RequestID middleware stores request and correlation IDs in the request
// context. Ctx returns the global logger with both fields attached:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Poster lookup failed")
//
// # slog Bridge
//
// NewSlogLogger returns a *slog.Logger that writes through zerolog. The
// supervisor tree hands it to sutureslog so restart events share the same
// output and level.
//
// # Testing
//
// NewTestLogger writes JSON to any io.Writer for assertions on log output.
package logging
