package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row holds the raw cell values of one dataset row, aligned with Table.Header.
type Row []string

// Get returns the cell at column i. Cells that are empty or beyond the end of a
// short row are reported as missing.
func (r Row) Get(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	if r[i] == "" {
		return "", false
	}
	return r[i], true
}

// Table is a raw tabular dataset.
type Table struct {
	Header []string
	Rows   []Row
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ParseCSV reads a header line followed by data rows.
// Quoting is lenient and rows may have a different number of fields than the
// header, matching the tolerance of the dataset exports this is used with.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv has no header row")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(table.Rows)+1, err)
		}
		table.Rows = append(table.Rows, Row(record))
	}
	return table, nil
}

// MemorySource serves a fixed Table. It backs tests and programmatic callers
// that already hold their records in memory.
type MemorySource struct {
	id    string
	table *Table
}

// NewMemorySource wraps table as a Source.
func NewMemorySource(id string, table *Table) *MemorySource {
	return &MemorySource{id: id, table: table}
}

func (s *MemorySource) GetSourceID() string    { return s.id }
func (s *MemorySource) GetDisplayName() string { return "in-memory table " + s.id }

func (s *MemorySource) Fetch(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.table == nil {
		return nil, fmt.Errorf("source %s has no table", s.id)
	}
	return s.table, nil
}
