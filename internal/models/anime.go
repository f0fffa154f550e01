// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

// Rating is one user rating from the processed ratings file.
type Rating struct {
	UserID  int64   `json:"user_id"`
	AnimeID int64   `json:"anime_id"`
	Rating  float64 `json:"rating"`
}

// Anime is a catalog row. Title is the English title (eng_version) used
// throughout the UI.
type Anime struct {
	AnimeID int64  `json:"anime_id"`
	Title   string `json:"title"`
	Genres  string `json:"genres"`
}

// Synopsis is the synopsis text for one anime.
type Synopsis struct {
	AnimeID  int64  `json:"anime_id"`
	Name     string `json:"name"`
	Synopsis string `json:"synopsis"`
}
