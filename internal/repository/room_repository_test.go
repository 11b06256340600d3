package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-adp-api/internal/models"
)

func newRoomRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRoomRepositoryList(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "capacity", "room_type", "created_at", "updated_at"}).
		AddRow("r1", "Lab 1", 30, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, capacity, room_type, created_at, updated_at FROM rooms ORDER BY name ASC")).
		WillReturnRows(rows)

	rooms, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, 30, rooms[0].Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryCreateUpdateDelete(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec("INSERT INTO rooms").
		WithArgs(sqlmock.AnyArg(), "Lab 1", 30, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), &models.Room{Name: "Lab 1", Capacity: 30}))

	mock.ExpectExec("UPDATE rooms SET name").
		WithArgs("Lab 1", 40, sqlmock.AnyArg(), sqlmock.AnyArg(), "r1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Update(context.Background(), &models.Room{ID: "r1", Name: "Lab 1", Capacity: 40}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "r1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
