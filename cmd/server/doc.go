// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package main is the entry point for the anime recommendation server.

The server loads a ratings table, an anime catalog, synopses and two trained
embedding tables (users and anime), then serves similarity lookups, hybrid
recommendations for known users, and cold-start recommendations from a list
of favorite titles. Poster images come from the Jikan API.

# Application Architecture

	RootSupervisor ("animerec")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService (catalog and embedding snapshots)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, YAML file and environment
 2. Logging: zerolog with JSON or console output
 3. Database: in-memory DuckDB used to read CSV and Parquet files
 4. Catalog and embeddings: initial snapshot load
 5. Poster service: Jikan client, circuit breaker and cache
 6. Recommender and HTTP handlers
 7. Supervisor tree

A failed initial load does not stop the server. The readiness probe reports
which snapshot is missing and the reload service keeps retrying.

# Example Usage

	export RATINGS_PATH=/data/processed/rating_df.parquet
	export ANIME_PATH=/data/processed/anime_df.parquet
	export SYNOPSIS_PATH=/data/processed/synopsis_df.parquet
	export EMBEDDINGS_DIR=/data/weights
	./animerec

	curl 'localhost:5000/api/v1/anime/similar?title=Naruto&n=5'
	curl -X POST localhost:5000/api/v1/recommendations -d '{"user_id": 42}'

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, the reload loop stops, and the poster cache and DuckDB are closed.
*/
package main
