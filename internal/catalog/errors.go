package catalog

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped by LoadError when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// LoadError reports that a catalog could not be built from its source.
// It is fatal to initialization.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load from %s failed: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
