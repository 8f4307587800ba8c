package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"releaseapi/internal/model"
	"releaseapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var versionCols = []string{"id", "version", "filename", "file_path", "is_latest", "release_notes", "created_at"}

func TestVersionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	v := &model.ReleaseVersion{
		ID:           "test-uuid",
		Version:      "1.0.1",
		Filename:     "CopyClipCloud_1.0.1.dmg",
		FilePath:     "versions/1.0.1/CopyClipCloud_1.0.1.dmg",
		ReleaseNotes: "fixes",
		CreatedAt:    now,
	}

	t.Run("make latest demotes inside one transaction", func(t *testing.T) {
		rows := sqlmock.NewRows(versionCols).
			AddRow(v.ID, v.Version, v.Filename, v.FilePath, true, v.ReleaseNotes, v.CreatedAt)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE versions SET is_latest = FALSE").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO versions").
			WithArgs(v.ID, v.Version, v.Filename, v.FilePath, true, sql.NullString{String: "fixes", Valid: true}, v.CreatedAt).
			WillReturnRows(rows)
		mock.ExpectCommit()

		result, err := repo.Create(ctx, v, true)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.True(t, result.IsLatest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not latest skips demote", func(t *testing.T) {
		rows := sqlmock.NewRows(versionCols).
			AddRow(v.ID, v.Version, v.Filename, v.FilePath, false, v.ReleaseNotes, v.CreatedAt)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO versions").
			WithArgs(v.ID, v.Version, v.Filename, v.FilePath, false, sql.NullString{String: "fixes", Valid: true}, v.CreatedAt).
			WillReturnRows(rows)
		mock.ExpectCommit()

		result, err := repo.Create(ctx, v, false)

		assert.NoError(t, err)
		assert.False(t, result.IsLatest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE versions SET is_latest = FALSE").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("INSERT INTO versions").
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		result, err := repo.Create(ctx, v, true)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVersionPostgres_FindLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(versionCols).
			AddRow("id-1", "2.3.10", "CopyClipCloud_2.3.10.zip", "versions/2.3.10/CopyClipCloud_2.3.10.zip", true, nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM versions WHERE is_latest = TRUE").
			WillReturnRows(rows)

		v, err := repo.FindLatest(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "2.3.10", v.Version)
		assert.True(t, v.IsLatest)
		assert.Empty(t, v.ReleaseNotes)
	})

	t.Run("none flagged", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM versions WHERE is_latest = TRUE").
			WillReturnError(sql.ErrNoRows)

		v, err := repo.FindLatest(ctx)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, v)
	})
}

func TestVersionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(versionCols).
		AddRow("id-1", "1.0.0", "app.dmg", "versions/1.0.0/app.dmg", false, "notes", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM versions WHERE id = ?").
		WithArgs("id-1").
		WillReturnRows(rows)

	v, err := repo.FindByID(ctx, "id-1")

	assert.NoError(t, err)
	assert.Equal(t, "id-1", v.ID)
	assert.Equal(t, "notes", v.ReleaseNotes)
}

func TestVersionPostgres_SetLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()

	t.Run("promotes inside one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE versions SET is_latest = FALSE").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE versions SET is_latest = TRUE WHERE id = ?").
			WithArgs("id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetLatest(ctx, "id-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id returns no rows", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE versions SET is_latest = FALSE").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE versions SET is_latest = TRUE WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SetLatest(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVersionPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewVersionPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM versions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(versionCols).
		AddRow("id-1", "1.0.0", "app.dmg", "versions/1.0.0/app.dmg", true, nil, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM versions ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(rows)

	res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}
