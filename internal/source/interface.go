package source

import "context"

// Source defines the interface for catalog data sources.
type Source interface {
	// GetSourceID returns the unique identifier for this source.
	// Parameters: none.
	// Returns:
	//   - string: stable source identifier.
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	// Parameters: none.
	// Returns:
	//   - string: display-friendly source name.
	GetDisplayName() string

	// Fetch reads the whole dataset.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	// Returns:
	//   - *Table: header and rows in dataset order.
	//   - error: non-nil if the dataset cannot be read.
	Fetch(ctx context.Context) (*Table, error)
}
