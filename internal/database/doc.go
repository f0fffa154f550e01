// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package database provides the embedded DuckDB engine used to read the
// recommender's CSV and Parquet artifacts.
//
// # Overview
//
// No persistent database file is kept. DB opens an in-memory DuckDB instance
// and the catalog and embedding loaders query data files directly through
// DuckDB table functions:
//
//	src, _ := database.Source("/data/processed/rating_df.csv")
//	rows, _ := db.Conn().QueryContext(ctx, "SELECT user_id, anime_id, rating FROM "+src)
//
// Source chooses read_csv_auto or read_parquet from the file extension.
//
// # Change Detection
//
// Fingerprint combines size and modification time of a set of files. The
// reload service compares fingerprints to decide when a snapshot must be
// rebuilt.
//
// # Thread Safety
//
// DB is safe for concurrent use; the pool is sized to the configured thread
// count.
package database
