// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package embedding

import (
	"fmt"
	"math"

	"github.com/tomtom215/animerec/internal/models"
)

// Kind identifies an embedding table.
type Kind string

const (
	KindUser  Kind = "user"
	KindAnime Kind = "anime"
)

// Table is an immutable embedding matrix with its id maps. Row i belongs to
// external id decode[i], and encode is the exact inverse of decode.
type Table struct {
	kind    Kind
	weights [][]float32
	dim     int
	encode  map[int64]int
	decode  []int64
}

// NewTable validates and indexes an embedding table. ids[i] is the external
// id of weights[i].
func NewTable(kind Kind, weights [][]float32, ids []int64) (*Table, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%s embeddings: table is empty", kind)
	}
	if len(ids) != len(weights) {
		return nil, fmt.Errorf("%s embeddings: %d rows but %d decode entries", kind, len(weights), len(ids))
	}

	dim := len(weights[0])
	if dim == 0 {
		return nil, fmt.Errorf("%s embeddings: zero-dimensional rows", kind)
	}
	for i, row := range weights {
		if len(row) != dim {
			return nil, fmt.Errorf("%s embeddings: row %d has dimension %d, want %d", kind, i, len(row), dim)
		}
	}

	encode := make(map[int64]int, len(ids))
	for i, id := range ids {
		if prev, dup := encode[id]; dup {
			return nil, fmt.Errorf("%s embeddings: id %d maps to both index %d and %d", kind, id, prev, i)
		}
		encode[id] = i
	}

	return &Table{
		kind:    kind,
		weights: weights,
		dim:     dim,
		encode:  encode,
		decode:  ids,
	}, nil
}

// Kind returns the table kind.
func (t *Table) Kind() Kind { return t.kind }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.weights) }

// Dim returns the embedding dimension.
func (t *Table) Dim() int { return t.dim }

// Row returns row i. The slice is shared and must not be modified.
func (t *Table) Row(i int) ([]float32, error) {
	if i < 0 || i >= len(t.weights) {
		return nil, &models.InvalidIndexError{Index: i, Len: len(t.weights)}
	}
	return t.weights[i], nil
}

// Index encodes an external id to its row index.
func (t *Table) Index(id int64) (int, error) {
	i, ok := t.encode[id]
	if !ok {
		return 0, models.NewNotFound(string(t.kind)+" id", id)
	}
	return i, nil
}

// ID decodes a row index to its external id.
func (t *Table) ID(i int) (int64, error) {
	if i < 0 || i >= len(t.decode) {
		return 0, models.NewNotFound(string(t.kind)+" index", i)
	}
	return t.decode[i], nil
}

// NormViolations counts rows whose L2 norm differs from 1 by more than tol.
func (t *Table) NormViolations(tol float64) int {
	n := 0
	for _, row := range t.weights {
		var sum float64
		for _, v := range row {
			sum += float64(v) * float64(v)
		}
		if math.Abs(math.Sqrt(sum)-1) > tol {
			n++
		}
	}
	return n
}
