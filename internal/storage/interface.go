package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Download when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the subset of bucket operations the catalog needs:
// publishing a dataset file and reading it back at startup.
type ObjectStorage interface {
	// Upload stores size bytes from reader under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens the object stored under key. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether key is present in the bucket.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for key, or "" when no public URL is configured.
	GetURL(key string) string
}
