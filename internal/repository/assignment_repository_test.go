package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvta/van-terminal-api/pkg/database"
)

func newRepositoryMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAssignmentRepositoryFindConflicting(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "van_id", "operator_id", "assigned_at"}).
		AddRow(3, 7, 2, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, van_id, operator_id, assigned_at FROM assignments WHERE van_id = $1 OR operator_id = $2`)).
		WithArgs(int64(7), int64(9)).
		WillReturnRows(rows)

	conflicts, err := repo.FindConflicting(context.Background(), 7, 9, nil)
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, int64(7), conflicts[0].VanID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryFindConflictingExcludesSelf(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, van_id, operator_id, assigned_at FROM assignments WHERE (van_id = $1 OR operator_id = $2) AND id != $3`)).
		WithArgs(int64(1), int64(9), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "van_id", "operator_id", "assigned_at"}))

	excludeID := int64(5)
	conflicts, err := repo.FindConflicting(context.Background(), 1, 9, &excludeID)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	assignedAt := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO assignments (van_id, operator_id) VALUES ($1, $2) RETURNING id, van_id, operator_id, assigned_at`)).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "van_id", "operator_id", "assigned_at"}).AddRow(1, 1, 1, assignedAt))

	assignment, err := repo.Insert(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), assignment.ID)
	assert.WithinDuration(t, assignedAt, assignment.AssignedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryInsertUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery("INSERT INTO assignments").
		WithArgs(int64(7), int64(2)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "assignments_van_id_key"})

	_, err := repo.Insert(context.Background(), 7, 2)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("UPDATE assignments").
		WithArgs(int64(99), int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 99, 1, 2)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("DELETE FROM assignments").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 4))

	mock.ExpectExec("DELETE FROM assignments").
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 999), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "van_id", "operator_id", "assigned_at"}).
		AddRow(1, 10, 20, time.Now()).
		AddRow(2, 11, 21, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, van_id, operator_id, assigned_at FROM assignments ORDER BY id`)).
		WillReturnRows(rows)

	assignments, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryListDetails(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "van_id", "operator_id", "assigned_at", "plate_number", "operator_firstname", "operator_lastname"}).
		AddRow(1, 10, 20, time.Now(), "ABC-1234", "Juan", "Dela Cruz")
	mock.ExpectQuery("SELECT a.id, a.van_id, a.operator_id, a.assigned_at").
		WillReturnRows(rows)

	details, err := repo.ListDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "ABC-1234", details[0].PlateNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
