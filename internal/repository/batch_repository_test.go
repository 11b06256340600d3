package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-adp-api/internal/models"
)

func newBatchRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBatchRepositoryList(t *testing.T) {
	db, mock, cleanup := newBatchRepoMock(t)
	defer cleanup()
	repo := NewBatchRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "student_count", "subject_ids", "created_at", "updated_at"}).
		AddRow("b1", "X-A", 35, []byte(`["sub1"]`), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, student_count, subject_ids, created_at, updated_at FROM batches ORDER BY name ASC")).
		WillReturnRows(rows)

	batches, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, batches, 1)
	assert.Equal(t, 35, batches[0].StudentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchRepositoryCreateUpdateDelete(t *testing.T) {
	db, mock, cleanup := newBatchRepoMock(t)
	defer cleanup()
	repo := NewBatchRepository(db)

	mock.ExpectExec("INSERT INTO batches").
		WithArgs(sqlmock.AnyArg(), "X-A", 35, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), &models.Batch{
		Name:         "X-A",
		StudentCount: 35,
		SubjectIDs:   types.JSONText(`["sub1"]`),
	}))

	mock.ExpectExec("UPDATE batches SET name").
		WithArgs("X-A", 36, sqlmock.AnyArg(), sqlmock.AnyArg(), "b1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Update(context.Background(), &models.Batch{
		ID:           "b1",
		Name:         "X-A",
		StudentCount: 36,
		SubjectIDs:   types.JSONText(`["sub1"]`),
	}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM batches WHERE id = $1")).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "b1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
