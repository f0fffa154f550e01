// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package embedding holds the trained user and anime embedding tables and the
neighbor search over them.

# Artifacts

For each kind (user, anime) the artifact directory holds:

	<kind>_weights.{parquet,csv}  idx BIGINT, embedding DOUBLE[]
	<kind>_map.{parquet,csv}      external_id BIGINT, idx BIGINT

Parquet is preferred when both exist. In CSV files the embedding column is a
list literal such as "[0.12, -0.40, ...]".

# Validation

A table is rejected at load when rows have inconsistent dimensions, when an
index is missing from the map, or when the map is not a bijection. Rows are
expected to be L2-normalized so the dot product equals cosine similarity;
rows whose norm deviates from 1 by more than the configured tolerance are
logged and counted but kept.

# Search

Nearest ranks every row by dot product with the query row and returns n+1
rows, since the query always matches itself. DropSelf removes that row.
Equal similarities are ordered by lowest row index in both directions.

	nbrs, err := embedding.Nearest(snap.Anime, idx, 10, embedding.Positive)
	nbrs = embedding.DropSelf(nbrs, idx)
*/
package embedding
