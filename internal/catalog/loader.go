// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/animerec/internal/database"
	"github.com/tomtom215/animerec/internal/models"
)

// Source column names.
const (
	colUserID   = "user_id"
	colAnimeID  = "anime_id"
	colRating   = "rating"
	colTitle    = "eng_version"
	colGenres   = "Genres"
	colMALID    = "MAL_ID"
	colName     = "Name"
	colSynopsis = "sypnopsis"
)

func loadRatings(ctx context.Context, conn *sql.DB, path string) ([]models.Rating, error) {
	src, err := database.Source(path)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT CAST(%[1]s AS BIGINT), CAST(%[2]s AS BIGINT), CAST(%[3]s AS DOUBLE) FROM %[4]s "+
			"WHERE %[1]s IS NOT NULL AND %[2]s IS NOT NULL AND %[3]s IS NOT NULL",
		database.QuoteIdent(colUserID), database.QuoteIdent(colAnimeID), database.QuoteIdent(colRating), src)

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings %s: %w", path, err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.UserID, &r.AnimeID, &r.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings %s: %w", path, err)
	}
	return ratings, nil
}

func loadAnime(ctx context.Context, conn *sql.DB, path string) ([]models.Anime, error) {
	src, err := database.Source(path)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT CAST(%[1]s AS BIGINT), CAST(%[2]s AS VARCHAR), CAST(%[3]s AS VARCHAR) FROM %[4]s WHERE %[1]s IS NOT NULL",
		database.QuoteIdent(colAnimeID), database.QuoteIdent(colTitle), database.QuoteIdent(colGenres), src)

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query anime %s: %w", path, err)
	}
	defer rows.Close()

	var anime []models.Anime
	for rows.Next() {
		var (
			a      models.Anime
			title  sql.NullString
			genres sql.NullString
		)
		if err := rows.Scan(&a.AnimeID, &title, &genres); err != nil {
			return nil, fmt.Errorf("failed to scan anime: %w", err)
		}
		a.Title = title.String
		a.Genres = genres.String
		anime = append(anime, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read anime %s: %w", path, err)
	}
	return anime, nil
}

func loadSynopses(ctx context.Context, conn *sql.DB, path string) ([]models.Synopsis, error) {
	src, err := database.Source(path)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT CAST(%[1]s AS BIGINT), CAST(%[2]s AS VARCHAR), CAST(%[3]s AS VARCHAR) FROM %[4]s WHERE %[1]s IS NOT NULL",
		database.QuoteIdent(colMALID), database.QuoteIdent(colName), database.QuoteIdent(colSynopsis), src)

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query synopsis %s: %w", path, err)
	}
	defer rows.Close()

	var synopses []models.Synopsis
	for rows.Next() {
		var (
			s    models.Synopsis
			name sql.NullString
			text sql.NullString
		)
		if err := rows.Scan(&s.AnimeID, &name, &text); err != nil {
			return nil, fmt.Errorf("failed to scan synopsis: %w", err)
		}
		s.Name = name.String
		s.Synopsis = text.String
		synopses = append(synopses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read synopsis %s: %w", path, err)
	}
	return synopses, nil
}
