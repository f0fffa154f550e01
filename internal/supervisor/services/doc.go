// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package services provides suture.Service wrappers for long-running
recommender components.

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine and
context cancellation triggers Shutdown with a bounded timeout.

ReloadService polls the catalog and embedding sources on a ticker and swaps
in a new snapshot when the files behind a source changed. A failed reload
keeps the previous snapshot and is retried on the next tick.

Each wrapper implements fmt.Stringer so suture can name it in log events.
*/
package services
