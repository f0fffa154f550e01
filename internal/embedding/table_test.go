// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package embedding

import (
	"errors"
	"testing"

	"github.com/tomtom215/animerec/internal/models"
)

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		weights [][]float32
		ids     []int64
		wantErr bool
	}{
		{"valid", [][]float32{{1, 0}, {0, 1}}, []int64{10, 20}, false},
		{"empty", nil, nil, true},
		{"missing decode entry", [][]float32{{1, 0}, {0, 1}}, []int64{10}, true},
		{"ragged rows", [][]float32{{1, 0}, {1}}, []int64{10, 20}, true},
		{"zero dimension", [][]float32{{}, {}}, []int64{10, 20}, true},
		{"duplicate id", [][]float32{{1, 0}, {0, 1}}, []int64{10, 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(KindAnime, tt.weights, tt.ids)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTable_EncodeDecodeInverse(t *testing.T) {
	ids := []int64{20, 269, 21, 1535, 5114}
	weights := make([][]float32, len(ids))
	for i := range weights {
		weights[i] = []float32{1, 0, 0}
	}
	tbl, err := NewTable(KindAnime, weights, ids)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < tbl.Len(); i++ {
		id, err := tbl.ID(i)
		if err != nil {
			t.Fatalf("ID(%d) error = %v", i, err)
		}
		back, err := tbl.Index(id)
		if err != nil || back != i {
			t.Errorf("Index(ID(%d)) = %d, %v, want %d", i, back, err, i)
		}
	}
	for _, id := range ids {
		idx, _ := tbl.Index(id)
		back, _ := tbl.ID(idx)
		if back != id {
			t.Errorf("ID(Index(%d)) = %d", id, back)
		}
	}
}

func TestTable_Lookups(t *testing.T) {
	tbl, err := NewTable(KindUser, [][]float32{{1, 0}, {0, 1}}, []int64{7, 9})
	if err != nil {
		t.Fatal(err)
	}

	var nf *models.NotFoundError
	if _, err := tbl.Index(8); !errors.As(err, &nf) {
		t.Errorf("Index(8) error = %v, want NotFoundError", err)
	} else if nf.Kind != "user id" {
		t.Errorf("NotFoundError.Kind = %q, want %q", nf.Kind, "user id")
	}
	if _, err := tbl.ID(2); !errors.As(err, &nf) {
		t.Errorf("ID(2) error = %v, want NotFoundError", err)
	}

	var inv *models.InvalidIndexError
	if _, err := tbl.Row(-1); !errors.As(err, &inv) {
		t.Errorf("Row(-1) error = %v, want InvalidIndexError", err)
	}
	if tbl.Dim() != 2 || tbl.Len() != 2 || tbl.Kind() != KindUser {
		t.Errorf("Dim, Len, Kind = %d, %d, %s", tbl.Dim(), tbl.Len(), tbl.Kind())
	}
}

func TestTable_NormViolations(t *testing.T) {
	tbl, err := NewTable(KindAnime, [][]float32{
		{1, 0},
		{0.6, 0.8},
		{2, 0},
		{0.5, 0.5},
	}, []int64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.NormViolations(1e-3); got != 2 {
		t.Errorf("NormViolations(1e-3) = %d, want 2", got)
	}
	if got := tbl.NormViolations(10); got != 0 {
		t.Errorf("NormViolations(10) = %d, want 0", got)
	}
}
