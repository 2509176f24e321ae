// Package poster maps movie titles to poster image URLs.
//
// Lookups never fail across the package boundary: every call returns a Result
// tagged with an Outcome, and callers fall back to a placeholder image for
// anything other than OutcomeFound.
package poster

import (
	"context"

	"github.com/timmy/movierec/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Outcome tags how a lookup ended.
type Outcome = domain.PosterStatus

const (
	OutcomeFound          = domain.PosterFound
	OutcomeNotFound       = domain.PosterNotFound
	OutcomeTimeout        = domain.PosterTimeout
	OutcomeTransportError = domain.PosterTransportError
	OutcomeUpstreamError  = domain.PosterUpstreamError
	OutcomeRateLimited    = domain.PosterRateLimited
	OutcomeCircuitOpen    = domain.PosterCircuitOpen
	OutcomeCanceled       = domain.PosterCanceled
	OutcomeDisabled       = domain.PosterDisabled
)

// DefaultPlaceholder is shown when no poster could be resolved.
const DefaultPlaceholder = "https://via.placeholder.com/300x450.png?text=No+Poster"

// Result is the outcome of one lookup. Err carries the cause for logging and
// is never meant to be returned to a caller as a failure.
type Result struct {
	Title   string
	URL     string
	Outcome Outcome
	Err     error
}

// Found reports whether a poster URL was resolved.
func (r Result) Found() bool {
	return r.Outcome == OutcomeFound && r.URL != ""
}

// ImageURL returns the poster URL, or placeholder when none was resolved.
func (r Result) ImageURL(placeholder string) string {
	if r.Found() {
		return r.URL
	}
	return placeholder
}

// Resolver looks up the poster of a title.
type Resolver interface {
	Resolve(ctx context.Context, title string) Result
}

// NopResolver is used when no metadata service is configured.
type NopResolver struct{}

// Resolve always reports OutcomeDisabled.
func (NopResolver) Resolve(ctx context.Context, title string) Result {
	return Result{Title: title, Outcome: OutcomeDisabled}
}

// ResolveAll looks up every title concurrently, at most limit at a time, and
// returns results in input order. Lookups are independent: a slow or failed
// one only affects its own slot.
func ResolveAll(ctx context.Context, r Resolver, titles []string, limit int) []Result {
	results := make([]Result, len(titles))
	if len(titles) == 0 {
		return results
	}
	if limit <= 0 {
		limit = len(titles)
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, title := range titles {
		g.Go(func() error {
			results[i] = r.Resolve(ctx, title)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
