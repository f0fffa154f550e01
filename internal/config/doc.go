// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config loads and validates recommender configuration using Koanf v2.

# Configuration Sources

Sources are layered, highest priority last:
  - Built-in defaults (defaultConfig)
  - YAML file: CONFIG_PATH, or ./config.yaml or /etc/animerec/config.yaml
  - Environment variables

Only the variables listed in envMappings are read; everything else in the
environment is ignored.

# Environment Variables

Server:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT
  - REQUEST_TIMEOUT: bound on one recommendation request (default 30s)

Data and embeddings:
  - RATINGS_PATH, ANIME_PATH, SYNOPSIS_PATH: CSV or Parquet files
  - DATA_RELOAD_INTERVAL: fingerprint poll interval (default 1m, 0 disables)
  - EMBEDDINGS_DIR: directory with user/anime weights and maps
  - EMBEDDINGS_NORM_TOLERANCE: allowed |norm-1| before a warning

Ranking:
  - RECOMMEND_DEFAULT_N (10), RECOMMEND_MAX_N (50)
  - RECOMMEND_USER_WEIGHT, RECOMMEND_CONTENT_WEIGHT (0.5 each)

Posters:
  - POSTER_BASE_URL (https://api.jikan.moe/v4)
  - POSTER_RATE_PER_SECOND, POSTER_BURST, POSTER_CONCURRENCY
  - POSTER_PLACEHOLDER_URL
  - POSTER_CIRCUIT_BREAKER
  - POSTER_CACHE_BACKEND (memory, badger, none), POSTER_CACHE_PATH,
    POSTER_CACHE_TTL, POSTER_CACHE_SIZE

Security:
  - CORS_ORIGINS: comma-separated
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Load returns an error if Validate fails, so callers never see a partially
valid Config.
*/
package config
