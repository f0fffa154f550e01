// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package embedding

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/database"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// writeArtifacts writes a valid 3-user, 3-anime artifact set.
func writeArtifacts(t *testing.T, dir string) {
	t.Helper()
	writeArtifact(t, dir, "user_weights.csv", "idx,embedding\n"+
		"0,\"[1.0, 0.0]\"\n"+
		"1,\"[0.0, 1.0]\"\n"+
		"2,\"[0.6, 0.8]\"\n")
	writeArtifact(t, dir, "user_map.csv", "external_id,idx\n11,0\n12,1\n13,2\n")
	writeArtifact(t, dir, "anime_weights.csv", "idx,embedding\n"+
		"2,\"[0.0, 0.0, 1.0]\"\n"+
		"0,\"[1.0, 0.0, 0.0]\"\n"+
		"1,\"[0.0, 1.0, 0.0]\"\n")
	writeArtifact(t, dir, "anime_map.csv", "external_id,idx\n20,0\n269,1\n21,2\n")
}

func setupStore(t *testing.T) (*Store, string) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Threads: 1})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dir := t.TempDir()
	writeArtifacts(t, dir)
	return NewStore(db, config.EmbeddingsConfig{Dir: dir, NormTolerance: 1e-3}, zerolog.Nop()), dir
}

func TestStore_Load(t *testing.T) {
	s, _ := setupStore(t)
	if s.Ready() {
		t.Fatal("Ready() = true before Load")
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.Users.Len() != 3 || snap.Users.Dim() != 2 {
		t.Errorf("users = %d x %d, want 3 x 2", snap.Users.Len(), snap.Users.Dim())
	}
	if snap.Anime.Len() != 3 || snap.Anime.Dim() != 3 {
		t.Errorf("anime = %d x %d, want 3 x 3", snap.Anime.Len(), snap.Anime.Dim())
	}

	// Rows are ordered by idx regardless of file order.
	row, _ := snap.Anime.Row(2)
	if row[2] != 1 {
		t.Errorf("anime row 2 = %v, want [0 0 1]", row)
	}
	idx, err := snap.Anime.Index(21)
	if err != nil || idx != 2 {
		t.Errorf("Index(21) = %d, %v, want 2", idx, err)
	}
	id, err := snap.Users.ID(1)
	if err != nil || id != 12 {
		t.Errorf("Users.ID(1) = %d, %v, want 12", id, err)
	}
}

func TestStore_LoadRejectsCorruptMaps(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"missing decode entry", "user_map.csv", "external_id,idx\n11,0\n12,1\n"},
		{"index out of range", "user_map.csv", "external_id,idx\n11,0\n12,1\n13,3\n"},
		{"index mapped twice", "anime_map.csv", "external_id,idx\n20,0\n269,0\n21,2\n"},
		{"duplicate external id", "anime_map.csv", "external_id,idx\n20,0\n20,1\n21,2\n"},
		{"gap in weights", "anime_weights.csv", "idx,embedding\n0,\"[1.0, 0.0, 0.0]\"\n2,\"[0.0, 0.0, 1.0]\"\n"},
		{"ragged weights", "user_weights.csv", "idx,embedding\n0,\"[1.0, 0.0]\"\n1,\"[1.0]\"\n2,\"[0.6, 0.8]\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, dir := setupStore(t)
			writeArtifact(t, dir, tt.file, tt.body)
			if err := s.Load(context.Background()); err == nil {
				t.Error("Load() error = nil, want validation error")
			}
			if s.Ready() {
				t.Error("Ready() = true after failed Load")
			}
		})
	}
}

func TestStore_LoadKeepsDenormalizedRows(t *testing.T) {
	s, dir := setupStore(t)
	writeArtifact(t, dir, "user_weights.csv", "idx,embedding\n"+
		"0,\"[2.0, 0.0]\"\n"+
		"1,\"[0.0, 1.0]\"\n"+
		"2,\"[0.6, 0.8]\"\n")

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v, want denormalized rows accepted", err)
	}
	if got := s.Snapshot().Users.NormViolations(1e-3); got != 1 {
		t.Errorf("NormViolations = %d, want 1", got)
	}
}

func TestStore_Reload(t *testing.T) {
	s, dir := setupStore(t)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}
	first := s.Snapshot()

	changed, err := s.Reload(ctx)
	if err != nil || changed {
		t.Errorf("Reload() unchanged = %v, %v, want false, nil", changed, err)
	}

	writeArtifact(t, dir, "user_map.csv", "external_id,idx\n11,0\n12,1\n99999,2\n")
	changed, err = s.Reload(ctx)
	if err != nil || !changed {
		t.Fatalf("Reload() after change = %v, %v, want true, nil", changed, err)
	}
	if s.Snapshot() == first {
		t.Error("snapshot not replaced")
	}
	if _, err := s.Snapshot().Users.Index(99999); err != nil {
		t.Errorf("Index(99999) after reload error = %v", err)
	}

	good := s.Snapshot()
	writeArtifact(t, dir, "user_map.csv", "external_id,idx\n11,0\n")
	if _, err := s.Reload(ctx); err == nil {
		t.Error("Reload() corrupt map error = nil")
	}
	if s.Snapshot() != good {
		t.Error("failed reload replaced the snapshot")
	}
}

func TestToFloat32s(t *testing.T) {
	if v, err := toFloat32s([]any{0.5, 1.0}); err != nil || len(v) != 2 || v[0] != 0.5 {
		t.Errorf("toFloat32s([]any) = %v, %v", v, err)
	}
	if v, err := toFloat32s([]float64{0.25}); err != nil || v[0] != 0.25 {
		t.Errorf("toFloat32s([]float64) = %v, %v", v, err)
	}
	for _, bad := range []any{nil, "x", []any{"a"}} {
		if _, err := toFloat32s(bad); err == nil {
			t.Errorf("toFloat32s(%v) error = nil", bad)
		}
	}
}
