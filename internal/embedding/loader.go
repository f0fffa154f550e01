// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package embedding

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/tomtom215/animerec/internal/database"
)

func artifactBases(dir string, kind Kind) (weights, idmap string) {
	return filepath.Join(dir, string(kind)+"_weights"), filepath.Join(dir, string(kind)+"_map")
}

// artifactCandidates lists every file that may back a kind, for fingerprinting.
func artifactCandidates(dir string, kinds ...Kind) []string {
	var paths []string
	for _, k := range kinds {
		w, m := artifactBases(dir, k)
		paths = append(paths, w+".parquet", w+".csv", m+".parquet", m+".csv")
	}
	return paths
}

// loadTable reads and validates one kind's weights and id map.
func loadTable(ctx context.Context, conn *sql.DB, dir string, kind Kind) (*Table, error) {
	wBase, mBase := artifactBases(dir, kind)

	wPath, err := database.FindArtifact(wBase)
	if err != nil {
		return nil, fmt.Errorf("%s weights: %w", kind, err)
	}
	mPath, err := database.FindArtifact(mBase)
	if err != nil {
		return nil, fmt.Errorf("%s map: %w", kind, err)
	}

	weights, err := loadWeights(ctx, conn, wPath)
	if err != nil {
		return nil, fmt.Errorf("%s weights: %w", kind, err)
	}
	ids, err := loadIDMap(ctx, conn, mPath, len(weights))
	if err != nil {
		return nil, fmt.Errorf("%s map: %w", kind, err)
	}
	return NewTable(kind, weights, ids)
}

// loadWeights returns rows ordered by idx. idx must be exactly 0..K-1.
func loadWeights(ctx context.Context, conn *sql.DB, path string) ([][]float32, error) {
	src, err := database.Source(path)
	if err != nil {
		return nil, err
	}
	query := "SELECT CAST(idx AS BIGINT), CAST(embedding AS DOUBLE[]) FROM " + src + " ORDER BY idx"

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", path, err)
	}
	defer rows.Close()

	var weights [][]float32
	for rows.Next() {
		var (
			idx int64
			raw any
		)
		if err := rows.Scan(&idx, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		if idx != int64(len(weights)) {
			return nil, fmt.Errorf("row index %d missing or duplicated (got %d)", len(weights), idx)
		}
		vec, err := toFloat32s(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", idx, err)
		}
		weights = append(weights, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return weights, nil
}

// loadIDMap returns the decode slice for a table of n rows. Every index must
// appear exactly once.
func loadIDMap(ctx context.Context, conn *sql.DB, path string, n int) ([]int64, error) {
	src, err := database.Source(path)
	if err != nil {
		return nil, err
	}
	query := "SELECT CAST(external_id AS BIGINT), CAST(idx AS BIGINT) FROM " + src

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", path, err)
	}
	defer rows.Close()

	ids := make([]int64, n)
	seen := make([]bool, n)
	count := 0
	for rows.Next() {
		var id, idx int64
		if err := rows.Scan(&id, &idx); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		if idx < 0 || idx >= int64(n) {
			return nil, fmt.Errorf("index %d out of range [0, %d)", idx, n)
		}
		if seen[idx] {
			return nil, fmt.Errorf("index %d mapped more than once", idx)
		}
		seen[idx] = true
		ids[idx] = id
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if count != n {
		return nil, fmt.Errorf("%d of %d rows have no decode entry", n-count, n)
	}
	return ids, nil
}

func toFloat32s(raw any) ([]float32, error) {
	switch v := raw.(type) {
	case []any:
		out := make([]float32, len(v))
		for i, e := range v {
			f, ok := e.(float64)
			if !ok {
				return nil, fmt.Errorf("element %d has type %T, want float64", i, e)
			}
			out[i] = float32(f)
		}
		return out, nil
	case []float64:
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("embedding is NULL")
	default:
		return nil, fmt.Errorf("embedding has type %T, want list", raw)
	}
}
