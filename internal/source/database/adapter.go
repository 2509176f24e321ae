package database

import (
	"context"
	"fmt"
	"strconv"

	"github.com/timmy/movierec/internal/domain"
	"github.com/timmy/movierec/internal/source"
)

const SourceID = "database"

// Columns produced by the adapter, in order.
var Columns = []string{"id", "title", "overview", "rating"}

// MovieLister is the repository method the adapter reads through.
type MovieLister interface {
	ListOrdered(ctx context.Context) ([]domain.Movie, error)
}

// Adapter exposes the movies table as a catalog source.
type Adapter struct {
	repo MovieLister
}

// NewAdapter creates a new database adapter.
func NewAdapter(repo MovieLister) *Adapter {
	return &Adapter{repo: repo}
}

// GetSourceID returns the unique identifier for this source
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source
func (a *Adapter) GetDisplayName() string {
	return "movies table"
}

// Fetch reads every row ordered by position. NULL columns become missing cells.
func (a *Adapter) Fetch(ctx context.Context) (*source.Table, error) {
	movies, err := a.repo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	table := &source.Table{
		Header: append([]string(nil), Columns...),
		Rows:   make([]source.Row, 0, len(movies)),
	}
	for _, m := range movies {
		row := source.Row{m.ExternalID, m.Title, "", ""}
		if m.Overview != nil {
			row[2] = *m.Overview
		}
		if m.Rating != nil {
			row[3] = strconv.FormatFloat(*m.Rating, 'g', -1, 64)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
