package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/timmy/movierec/internal/source"
)

const SourceID = "csvfile"

// Adapter implements the Source interface for a CSV file on local disk.
type Adapter struct {
	path string
}

// NewAdapter creates a new CSV file adapter
func NewAdapter(path string) *Adapter {
	return &Adapter{path: path}
}

// GetSourceID returns the unique identifier for this source
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source
func (a *Adapter) GetDisplayName() string {
	return "CSV file " + filepath.Base(a.path)
}

// Fetch reads and parses the file.
func (a *Adapter) Fetch(ctx context.Context) (*source.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", a.path, err)
	}
	defer f.Close()

	table, err := source.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.path, err)
	}
	return table, nil
}
