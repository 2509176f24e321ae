// Package recommend ranks catalog movies by plot similarity to a query title.
//
// An Engine is built once at startup and never mutated afterwards, so a single
// instance is shared by every request goroutine without locking.
package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/timmy/movierec/internal/catalog"
	"github.com/timmy/movierec/internal/domain"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/metrics"
	"github.com/timmy/movierec/internal/similarity"
	"github.com/timmy/movierec/internal/source"
	"github.com/timmy/movierec/internal/textvec"
)

// DefaultTopN is used when Recommend receives a non-positive count.
const DefaultTopN = 5

// Options configures engine construction.
type Options struct {
	// Workers is passed to the similarity matrix builder.
	Workers int
}

// Engine is the immutable recommender state: catalog, vocabulary, term
// vectors and similarity matrix.
type Engine struct {
	catalog *catalog.Catalog
	vocab   *textvec.Vocabulary
	vectors []textvec.TermVector
	matrix  *similarity.Matrix
	built   time.Time
	elapsed time.Duration
}

// Stats summarizes the engine for diagnostics.
type Stats struct {
	Movies         int       `json:"movies"`
	Vocabulary     int       `json:"vocabulary"`
	ZeroVectors    int       `json:"zero_vectors"`
	Rated          int       `json:"rated"`
	DuplicateTitle int       `json:"duplicate_titles"`
	BuiltAt        time.Time `json:"built_at"`
	BuildMillis    int64     `json:"build_ms"`
}

// Initialize loads the catalog from src and builds an Engine from it.
// Catalog failures are returned as *catalog.LoadError.
func Initialize(ctx context.Context, src source.Source, opts Options) (*Engine, error) {
	c, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return New(ctx, c, opts)
}

// New vectorizes the overviews of c and computes the similarity matrix.
func New(ctx context.Context, c *catalog.Catalog, opts Options) (*Engine, error) {
	start := time.Now()

	vocab, vectors := textvec.Fit(c.Overviews())
	matrix, err := similarity.Compute(ctx, vectors, similarity.Options{Workers: opts.Workers})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog: c,
		vocab:   vocab,
		vectors: vectors,
		matrix:  matrix,
		built:   time.Now(),
	}
	e.elapsed = e.built.Sub(start)
	metrics.RecordEngine(c.Len(), vocab.Len(), e.elapsed)

	logger.With(logger.Fields{
		logger.FieldComponent:  "recommend",
		logger.FieldCount:      c.Len(),
		"vocabulary":           vocab.Len(),
		logger.FieldDurationMs: e.elapsed.Milliseconds(),
	}).Info(ctx, "Recommender initialized")

	return e, nil
}

// Recommend returns up to topN movies most similar to title, best first.
// Ties are ordered by ascending catalog id. The query movie itself is never
// included. An unknown title yields an empty slice; this method never fails.
func (e *Engine) Recommend(title string, topN int) []domain.Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}
	idx, ok := e.catalog.Lookup(title)
	if !ok {
		return []domain.Recommendation{}
	}

	scores := e.matrix.Row(idx)
	candidates := make([]int, 0, len(scores))
	for j := range scores {
		if j != idx {
			candidates = append(candidates, j)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		sa, sb := scores[candidates[a]], scores[candidates[b]]
		if sa != sb {
			return sa > sb
		}
		return candidates[a] < candidates[b]
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	out := make([]domain.Recommendation, len(candidates))
	for i, j := range candidates {
		rec, _ := e.catalog.Record(j)
		out[i] = domain.Recommendation{Movie: rec, Score: scores[j]}
	}
	return out
}

// Catalog returns the loaded catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Vocabulary returns the fitted vocabulary.
func (e *Engine) Vocabulary() *textvec.Vocabulary {
	return e.vocab
}

// Vector returns the term vector of the movie with id.
func (e *Engine) Vector(id int) (textvec.TermVector, bool) {
	if id < 0 || id >= len(e.vectors) {
		return textvec.TermVector{}, false
	}
	return e.vectors[id], true
}

// Similarity returns the score between two titles.
func (e *Engine) Similarity(a, b string) (float64, bool) {
	i, ok := e.catalog.Lookup(a)
	if !ok {
		return 0, false
	}
	j, ok := e.catalog.Lookup(b)
	if !ok {
		return 0, false
	}
	return e.matrix.At(i, j), true
}

// Stats reports sizes and build timing.
func (e *Engine) Stats() Stats {
	empty, rated := 0, 0
	for _, v := range e.vectors {
		if v.IsZero() {
			empty++
		}
	}
	for _, m := range e.catalog.Records() {
		if m.HasRating() {
			rated++
		}
	}
	return Stats{
		Movies:         e.catalog.Len(),
		Vocabulary:     e.vocab.Len(),
		ZeroVectors:    empty,
		Rated:          rated,
		DuplicateTitle: e.catalog.Duplicates(),
		BuiltAt:        e.built,
		BuildMillis:    e.elapsed.Milliseconds(),
	}
}
