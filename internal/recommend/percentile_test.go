// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"math"
	"slices"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
		ok     bool
	}{
		{"empty", nil, 75, 0, false},
		{"singleton", []float64{7}, 75, 7, true},
		{"interpolated", []float64{9, 5, 10}, 75, 9.5, true},
		{"four values", []float64{1, 2, 3, 4}, 75, 3.25, true},
		{"median even", []float64{4, 1, 3, 2}, 50, 2.5, true},
		{"all equal", []float64{8, 8, 8}, 75, 8, true},
		{"p100", []float64{1, 2, 3}, 100, 3, true},
		{"p0", []float64{1, 2, 3}, 0, 1, true},
		{"p clamped", []float64{1, 2, 3}, 150, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Percentile(tt.values, tt.p)
			if ok != tt.ok {
				t.Fatalf("Percentile() ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentile_DoesNotModifyInput(t *testing.T) {
	values := []float64{9, 5, 10}
	Percentile(values, 75)
	if !slices.Equal(values, []float64{9, 5, 10}) {
		t.Errorf("values = %v, want unchanged", values)
	}
}
