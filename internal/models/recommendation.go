// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

// RecommendationItem is one entry of a recommendation list.
type RecommendationItem struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// Preference is a title the user rated at or above their 75th percentile.
type Preference struct {
	AnimeID int64   `json:"anime_id"`
	Title   string  `json:"title"`
	Genres  string  `json:"genres"`
	Rating  float64 `json:"rating"`
}

// Candidate is a collaborative candidate: a title liked by similar users.
// Count is how many similar users liked it.
type Candidate struct {
	AnimeID  int64  `json:"anime_id"`
	Title    string `json:"title"`
	Count    int    `json:"count"`
	Genres   string `json:"genres"`
	Synopsis string `json:"synopsis"`
}

// SimilarAnime is an anime neighbor search result.
type SimilarAnime struct {
	AnimeID    int64   `json:"anime_id"`
	Title      string  `json:"title"`
	Similarity float32 `json:"similarity"`
	Genres     string  `json:"genres"`
}

// SimilarUser is a user neighbor search result.
type SimilarUser struct {
	UserID     int64   `json:"user_id"`
	Similarity float32 `json:"similarity"`
}
