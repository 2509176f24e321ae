// Package similarity builds the dense pairwise cosine similarity matrix over
// unit-length term vectors.
package similarity

import (
	"context"
	"fmt"

	"github.com/timmy/movierec/internal/textvec"
	"golang.org/x/sync/errgroup"
)

// Options tunes matrix construction.
type Options struct {
	// Workers is the number of goroutines computing row blocks. Values below 2
	// compute every row on the calling goroutine.
	Workers int
}

// Matrix is a square, symmetric, read-only similarity matrix.
type Matrix struct {
	n    int
	data []float64
}

type posting struct {
	doc    int
	weight float64
}

// Compute returns matrix[i][j] = vectors[i]·vectors[j] for every pair.
//
// Products are accumulated per row through an inverted index in ascending
// dimension order, so (i,j) and (j,i) sum identical terms in identical order
// and the result is exactly symmetric. Values are clamped to [0,1] and the
// diagonal of every non-zero vector is exactly 1.
func Compute(ctx context.Context, vectors []textvec.TermVector, opts Options) (*Matrix, error) {
	n := len(vectors)
	m := &Matrix{n: n, data: make([]float64, n*n)}
	if n == 0 {
		return m, nil
	}

	postings := make(map[int][]posting)
	for doc, v := range vectors {
		for _, e := range v.Entries() {
			postings[e.Dim] = append(postings[e.Dim], posting{doc: doc, weight: e.Weight})
		}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	g, gctx := errgroup.WithContext(ctx)
	block := (n + workers - 1) / workers
	for start := 0; start < n; start += block {
		lo, hi := start, start+block
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				m.fillRow(i, vectors[i], postings)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("similarity matrix construction aborted: %w", err)
	}
	return m, nil
}

// fillRow writes row i only.
func (m *Matrix) fillRow(i int, v textvec.TermVector, postings map[int][]posting) {
	row := m.data[i*m.n : (i+1)*m.n]
	for _, e := range v.Entries() {
		for _, p := range postings[e.Dim] {
			row[p.doc] += e.Weight * p.weight
		}
	}
	for j, s := range row {
		row[j] = clamp(s)
	}
	if !v.IsZero() {
		row[i] = 1
	}
}

func clamp(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}

// Size returns the number of rows.
func (m *Matrix) Size() int {
	return m.n
}

// At returns matrix[i][j]; out-of-range indices yield 0.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		return 0
	}
	return m.data[i*m.n+j]
}

// Row returns a copy of row i, or nil when out of range.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.n {
		return nil
	}
	out := make([]float64, m.n)
	copy(out, m.data[i*m.n:(i+1)*m.n])
	return out
}

