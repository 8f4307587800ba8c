package repository

import (
	"context"

	"releaseapi/internal/model"
)

// DownloadRepository defines data access for per-version download counters.
type DownloadRepository interface {
	// Increment adds one download for the given version, creating the counter
	// row on first use.
	Increment(ctx context.Context, version string) error

	// Sum returns the total across all counter rows as a single aggregate query.
	Sum(ctx context.Context) (int64, error)

	// ListCounts returns all counter rows. Used as a client-side summing
	// fallback when the aggregate query fails.
	ListCounts(ctx context.Context) ([]model.DownloadCount, error)
}
