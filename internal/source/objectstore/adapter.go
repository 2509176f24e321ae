package objectstore

import (
	"context"
	"fmt"

	"github.com/timmy/movierec/internal/source"
	"github.com/timmy/movierec/internal/storage"
)

const SourceID = "objectstore"

// Adapter reads a CSV catalog object from S3-compatible storage.
type Adapter struct {
	store storage.ObjectStorage
	key   string
}

// NewAdapter creates a new object storage adapter for key.
func NewAdapter(store storage.ObjectStorage, key string) *Adapter {
	return &Adapter{store: store, key: key}
}

// GetSourceID returns the unique identifier for this source
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source
func (a *Adapter) GetDisplayName() string {
	return "object " + a.key
}

// Fetch downloads the object and parses it as CSV.
func (a *Adapter) Fetch(ctx context.Context) (*source.Table, error) {
	body, err := a.store.Download(ctx, a.key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	table, err := source.ParseCSV(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse object %s: %w", a.key, err)
	}
	return table, nil
}
