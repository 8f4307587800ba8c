package postgres

import (
	"context"
	"database/sql"

	"releaseapi/internal/model"
	"releaseapi/internal/repository"
)

// VersionPostgres is a PostgreSQL implementation of repository.VersionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type VersionPostgres struct {
	db *sql.DB
}

// NewVersionPostgres creates a new VersionPostgres repository.
func NewVersionPostgres(db *sql.DB) *VersionPostgres {
	return &VersionPostgres{db: db}
}

var _ repository.VersionRepository = (*VersionPostgres)(nil)

const versionColumns = `id, version, filename, file_path, is_latest, release_notes, created_at`

func scanVersion(row interface{ Scan(...any) error }) (*model.ReleaseVersion, error) {
	var v model.ReleaseVersion
	var notes sql.NullString
	if err := row.Scan(
		&v.ID,
		&v.Version,
		&v.Filename,
		&v.FilePath,
		&v.IsLatest,
		&notes,
		&v.CreatedAt,
	); err != nil {
		return nil, err
	}
	v.ReleaseNotes = notes.String
	return &v, nil
}

func nullNotes(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create inserts a new version row, demoting the current latest in the same
// transaction when makeLatest is set.
func (r *VersionPostgres) Create(ctx context.Context, v *model.ReleaseVersion, makeLatest bool) (*model.ReleaseVersion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if makeLatest {
		const qDemote = `UPDATE versions SET is_latest = FALSE WHERE is_latest = TRUE`
		if _, err := tx.ExecContext(ctx, qDemote); err != nil {
			return nil, err
		}
	}

	const qInsert = `
		INSERT INTO versions (id, version, filename, file_path, is_latest, release_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + versionColumns
	row := tx.QueryRowContext(ctx, qInsert,
		v.ID,
		v.Version,
		v.Filename,
		v.FilePath,
		makeLatest,
		nullNotes(v.ReleaseNotes),
		v.CreatedAt,
	)
	out, err := scanVersion(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single version row by its ID.
func (r *VersionPostgres) FindByID(ctx context.Context, id string) (*model.ReleaseVersion, error) {
	const q = `
		SELECT ` + versionColumns + `
		FROM versions
		WHERE id = $1
	`
	return scanVersion(r.db.QueryRowContext(ctx, q, id))
}

// FindLatest fetches the row flagged is_latest. The partial unique index
// guarantees at most one such row.
func (r *VersionPostgres) FindLatest(ctx context.Context) (*model.ReleaseVersion, error) {
	const q = `
		SELECT ` + versionColumns + `
		FROM versions
		WHERE is_latest = TRUE
	`
	return scanVersion(r.db.QueryRowContext(ctx, q))
}

// SetLatest demotes all flagged rows and promotes the given ID atomically.
// Returns sql.ErrNoRows when the ID matches no row.
func (r *VersionPostgres) SetLatest(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qDemote = `UPDATE versions SET is_latest = FALSE WHERE is_latest = TRUE`
	if _, err := tx.ExecContext(ctx, qDemote); err != nil {
		return err
	}

	const qPromote = `UPDATE versions SET is_latest = TRUE WHERE id = $1`
	res, err := tx.ExecContext(ctx, qPromote, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// List returns versions using LIMIT/OFFSET pagination and a total count.
func (r *VersionPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ReleaseVersion], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM versions`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT ` + versionColumns + `
		FROM versions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ReleaseVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ReleaseVersion]{
		Items: items,
		Total: total,
	}, nil
}
