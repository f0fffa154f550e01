// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package models defines the data structures shared by the catalog, embedding,
recommend and api packages.

Model Categories:

 1. Source Data (immutable at serving time):
    - Rating: one (user, anime, rating) row
    - Anime: catalog row keyed by anime_id
    - Synopsis: per-anime synopsis text

 2. Ranking Results:
    - Preference: a title the user rated in their top quartile
    - Candidate: a collaborative candidate with its frequency
    - SimilarAnime / SimilarUser: neighbor search results
    - RecommendationItem: final {title, image_url} output

 3. API Requests:
    - ColdStartRequest, RecommendRequest with validator tags

The numeric anime_id is canonical. Titles are only used at the boundary and
may be ambiguous; lookups by title resolve to the first catalog row.
*/
package models
