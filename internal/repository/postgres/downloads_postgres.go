package postgres

import (
	"context"
	"database/sql"

	"releaseapi/internal/model"
	"releaseapi/internal/repository"
)

// DownloadPostgres is a PostgreSQL implementation of repository.DownloadRepository.
type DownloadPostgres struct {
	db *sql.DB
}

// NewDownloadPostgres creates a new DownloadPostgres repository.
func NewDownloadPostgres(db *sql.DB) *DownloadPostgres {
	return &DownloadPostgres{db: db}
}

var _ repository.DownloadRepository = (*DownloadPostgres)(nil)

// Increment bumps the counter for a version, creating the row on first download.
// The upsert is atomic on the version primary key, so concurrent downloads of
// the same version never lose increments.
func (r *DownloadPostgres) Increment(ctx context.Context, version string) error {
	const q = `
		INSERT INTO download_counts (version, download_count)
		VALUES ($1, 1)
		ON CONFLICT (version)
		DO UPDATE SET download_count = download_counts.download_count + 1
	`
	_, err := r.db.ExecContext(ctx, q, version)
	return err
}

// Sum returns the total downloads across all versions in one aggregate query.
func (r *DownloadPostgres) Sum(ctx context.Context) (int64, error) {
	const q = `SELECT COALESCE(SUM(download_count), 0) FROM download_counts`
	var total int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListCounts returns every counter row.
func (r *DownloadPostgres) ListCounts(ctx context.Context) ([]model.DownloadCount, error) {
	const q = `SELECT version, download_count FROM download_counts`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]model.DownloadCount, 0)
	for rows.Next() {
		var c model.DownloadCount
		if err := rows.Scan(&c.Version, &c.DownloadCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
