// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package catalog loads the ratings, anime catalog and synopsis files into an
immutable in-memory snapshot and serves lookups from it.

Files are read through DuckDB (read_csv_auto or read_parquet, chosen by
extension). Expected columns:

	ratings:  user_id, anime_id, rating
	anime:    anime_id, eng_version, Genres
	synopsis: MAL_ID, Name, sypnopsis

Row order is file order. Title lookups resolve to the first catalog row with
that title; duplicates are counted and logged at load.

Catalog publishes snapshots through an atomic pointer. Reload rebuilds only
when the files' size or modification time changed, and a failed reload keeps
the previous snapshot.
*/
package catalog
