package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/choreboard/internal/database"
)

func setupMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return &database.DB{DB: sqlDB, Dialect: database.Postgres}, mock
}

func TestPostgresPlaceholdersAreRebound(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO buildings (name, description, created_at) VALUES ($1, $2, $3) RETURNING id`,
	)).WithArgs("Main House", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + buildingCols + ` FROM buildings WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(7, "Main House", "", now))

	b, err := NewBuildingStore(db).Create(context.Background(), "Main House", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, "Main House", b.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUniqueViolationMapsToErrDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := NewUserStore(db).Create(context.Background(), "Alice")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresForeignKeyViolationMapsToErrReference(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM places WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnError(&pq.Error{Code: "23503", Message: "update or delete violates foreign key constraint"})

	err := NewPlaceStore(db).Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBuildingDeleteRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM places WHERE building_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM buildings WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err := NewBuildingStore(db).Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}
