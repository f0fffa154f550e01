// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package embedding

import (
	"cmp"
	"slices"
)

// Direction selects the most similar (Positive) or least similar (Negative)
// rows.
type Direction int

const (
	Positive Direction = iota
	Negative
)

// Neighbor is one search result.
type Neighbor struct {
	Index      int
	Similarity float32
}

// Similarities returns the dot product of the query row with every row.
func Similarities(t *Table, query int) ([]float32, error) {
	q, err := t.Row(query)
	if err != nil {
		return nil, err
	}
	dists := make([]float32, len(t.weights))
	for i, row := range t.weights {
		dists[i] = dot(row, q)
	}
	return dists, nil
}

// Nearest returns the n+1 rows most (Positive, descending) or least
// (Negative, ascending) similar to the query row. The query row itself is
// normally among them; use DropSelf to remove it. The whole table is
// returned when n+1 exceeds its length.
func Nearest(t *Table, query, n int, dir Direction) ([]Neighbor, error) {
	nbrs, _, err := NearestWithDistances(t, query, n, dir)
	return nbrs, err
}

// NearestWithDistances is Nearest that also returns the full similarity
// vector indexed by row.
func NearestWithDistances(t *Table, query, n int, dir Direction) ([]Neighbor, []float32, error) {
	dists, err := Similarities(t, query)
	if err != nil {
		return nil, nil, err
	}

	k := n + 1
	if k < 1 {
		k = 1
	}
	k = min(k, len(dists))

	order := make([]int, len(dists))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		c := cmp.Compare(dists[a], dists[b])
		if dir == Positive {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	nbrs := make([]Neighbor, k)
	for i, idx := range order[:k] {
		nbrs[i] = Neighbor{Index: idx, Similarity: dists[idx]}
	}
	return nbrs, dists, nil
}

// DropSelf removes the query row from a neighbor list, keeping order.
func DropSelf(nbrs []Neighbor, query int) []Neighbor {
	out := make([]Neighbor, 0, len(nbrs))
	for _, nb := range nbrs {
		if nb.Index != query {
			out = append(out, nb)
		}
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
