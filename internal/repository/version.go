package repository

import (
	"context"

	"releaseapi/internal/model"
)

// VersionRepository defines data access for release versions using SQL queries only.
// No business logic here — strictly persistence operations.
//
// The latest pointer is maintained inside single transactions: demote-all plus
// insert (Create) or demote-all plus promote (SetLatest) commit atomically, so
// readers never observe two flagged rows and concurrent writers cannot interleave
// between the demote and the flip.
type VersionRepository interface {
	// Create inserts a new version record. With makeLatest, all currently flagged
	// rows are demoted and the new row inserted with is_latest=true in one
	// transaction. Returns the stored record (may include values set by the DB).
	Create(ctx context.Context, v *model.ReleaseVersion, makeLatest bool) (*model.ReleaseVersion, error)

	// FindByID returns a version record by its ID.
	FindByID(ctx context.Context, id string) (*model.ReleaseVersion, error)

	// FindLatest returns the single record flagged is_latest, or sql.ErrNoRows.
	FindLatest(ctx context.Context) (*model.ReleaseVersion, error)

	// SetLatest demotes all flagged rows and promotes the given ID in one
	// transaction. Returns sql.ErrNoRows when the ID matches no record.
	SetLatest(ctx context.Context, id string) error

	// List returns a paginated list of versions (newest first) and a total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ReleaseVersion], error)
}
