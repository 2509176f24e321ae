package catalog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/timmy/movierec/internal/domain"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/source"
)

// Column names read from the source table.
const (
	ColumnTitle       = "title"
	ColumnOverview    = "overview"
	ColumnRating      = "rating"
	ColumnVoteAverage = "vote_average"
	ColumnID          = "id"
)

// Catalog is the immutable, ordered set of movie records.
type Catalog struct {
	records    []domain.MovieRecord
	index      map[string]int
	duplicates int
}

// Load reads src and builds a Catalog. Row order is preserved and becomes the id.
// Any failure is returned as *LoadError.
func Load(ctx context.Context, src source.Source) (*Catalog, error) {
	table, err := src.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.GetDisplayName(), Err: err}
	}

	titleCol := table.ColumnIndex(ColumnTitle)
	if titleCol < 0 {
		return nil, &LoadError{Source: src.GetDisplayName(), Err: fmt.Errorf("%w: %s", ErrMissingColumn, ColumnTitle)}
	}
	overviewCol := table.ColumnIndex(ColumnOverview)
	if overviewCol < 0 {
		return nil, &LoadError{Source: src.GetDisplayName(), Err: fmt.Errorf("%w: %s", ErrMissingColumn, ColumnOverview)}
	}
	ratingCol := table.ColumnIndex(ColumnRating)
	if ratingCol < 0 {
		ratingCol = table.ColumnIndex(ColumnVoteAverage)
	}
	idCol := table.ColumnIndex(ColumnID)

	records := make([]domain.MovieRecord, len(table.Rows))
	for i, row := range table.Rows {
		title, _ := row.Get(titleCol)
		overview, _ := row.Get(overviewCol)
		externalID, _ := row.Get(idCol)
		records[i] = domain.MovieRecord{
			Title:      title,
			Overview:   overview,
			Rating:     parseRating(row, ratingCol),
			ExternalID: externalID,
		}
	}

	c := FromRecords(records)
	log := logger.GetDefault().WithFields(logger.Fields{
		logger.FieldComponent: "catalog",
		logger.FieldSource:    src.GetSourceID(),
		logger.FieldCount:     c.Len(),
	})
	if c.duplicates > 0 {
		log.WithField("duplicates", c.duplicates).Warn("Duplicate titles in catalog, the first occurrence wins lookups")
	}
	log.Info("Catalog loaded")

	return c, nil
}

// FromRecords builds a Catalog from records already in memory.
// IDs are reassigned from slice position.
func FromRecords(records []domain.MovieRecord) *Catalog {
	c := &Catalog{
		records: make([]domain.MovieRecord, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		r.ID = i
		c.records[i] = r
		if r.Title == "" {
			continue
		}
		if _, exists := c.index[r.Title]; exists {
			c.duplicates++
			continue
		}
		c.index[r.Title] = i
	}
	return c
}

// parseRating returns nil for missing or non-numeric cells.
func parseRating(row source.Row, col int) *float64 {
	raw, ok := row.Get(col)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Record returns the record with the given id.
func (c *Catalog) Record(id int) (domain.MovieRecord, bool) {
	if id < 0 || id >= len(c.records) {
		return domain.MovieRecord{}, false
	}
	return c.records[id], true
}

// Records returns a copy of every record in catalog order.
func (c *Catalog) Records() []domain.MovieRecord {
	out := make([]domain.MovieRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Lookup finds the id of the record with exactly this title.
func (c *Catalog) Lookup(title string) (int, bool) {
	id, ok := c.index[title]
	return id, ok
}

// Duplicates returns how many records share a title with an earlier record.
func (c *Catalog) Duplicates() int {
	return c.duplicates
}

// Overviews returns the overview texts in catalog order.
func (c *Catalog) Overviews() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Overview
	}
	return out
}

// Titles returns the titles in catalog order.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Title
	}
	return out
}
