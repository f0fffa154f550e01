// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/animerec/internal/config"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{Threads: 2, MaxMemory: "256MB"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNew_Ping(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestSource_CSV(t *testing.T) {
	db := setupTestDB(t)
	path := writeFile(t, t.TempDir(), "rating_df.csv", "user_id,anime_id,rating\n1,20,9\n1,21,5\n2,20,10\n")

	src, err := Source(path)
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}

	var count int
	var total float64
	row := db.Conn().QueryRowContext(context.Background(), "SELECT COUNT(*), CAST(SUM(rating) AS DOUBLE) FROM "+src)
	if err := row.Scan(&count, &total); err != nil {
		t.Fatalf("query error = %v", err)
	}
	if count != 3 || total != 24 {
		t.Errorf("COUNT, SUM = %d, %v, want 3, 24", count, total)
	}
}

func TestSource_QuotesPath(t *testing.T) {
	db := setupTestDB(t)
	dir := filepath.Join(t.TempDir(), "o'brien")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "anime_df.csv", "anime_id,eng_version\n20,Naruto\n")

	src, err := Source(path)
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	var title string
	if err := db.Conn().QueryRowContext(context.Background(), "SELECT eng_version FROM "+src).Scan(&title); err != nil {
		t.Fatalf("query error = %v", err)
	}
	if title != "Naruto" {
		t.Errorf("title = %q, want Naruto", title)
	}
}

func TestSource_Formats(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"a.csv", false},
		{"a.CSV", false},
		{"a.parquet", false},
		{"a.json", true},
		{"a", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Source(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Source(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("Source(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
		})
	}
}

func TestFindArtifact(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "user_map.csv", "external_id,idx\n")
	writeFile(t, dir, "anime_map.csv", "external_id,idx\n")
	writeFile(t, dir, "anime_map.parquet", "")

	got, err := FindArtifact(filepath.Join(dir, "user_map"))
	if err != nil || got != filepath.Join(dir, "user_map.csv") {
		t.Errorf("FindArtifact(user_map) = %q, %v", got, err)
	}

	got, err = FindArtifact(filepath.Join(dir, "anime_map"))
	if err != nil || got != filepath.Join(dir, "anime_map.parquet") {
		t.Errorf("FindArtifact(anime_map) = %q, %v, want parquet preferred", got, err)
	}

	if _, err := FindArtifact(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("FindArtifact(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv", "x\n1\n")
	missing := filepath.Join(dir, "b.csv")

	first := Fingerprint(path, missing)
	if first != Fingerprint(path, missing) {
		t.Error("Fingerprint not stable for unchanged files")
	}

	writeFile(t, dir, "b.csv", "y\n")
	afterCreate := Fingerprint(path, missing)
	if afterCreate == first {
		t.Error("Fingerprint unchanged after a missing file appeared")
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	if Fingerprint(path, missing) == afterCreate {
		t.Error("Fingerprint unchanged after mtime change")
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := QuoteIdent("Genres"); got != `"Genres"` {
		t.Errorf("QuoteIdent(Genres) = %s", got)
	}
	if got := QuoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf(`QuoteIdent(a"b) = %s`, got)
	}
}
