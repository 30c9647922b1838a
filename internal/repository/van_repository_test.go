package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvta/van-terminal-api/internal/models"
)

func vanRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "mv_file_no", "plate_number", "engine_no", "chassis_no", "denomination",
		"piston_displacement", "number_of_cylinders", "fuel", "make", "series", "body_type",
		"body_no", "year_model", "gross_weight", "net_weight", "shipping_weight",
		"net_capacity", "year_last_registered", "expiration_date", "archived",
	})
}

func addVanRow(rows *sqlmock.Rows, id int64, plate string, archived bool) *sqlmock.Rows {
	return rows.AddRow(id, "MV-001", plate, "ENG-1", "CHS-1", "UV", "2500", 4,
		"Diesel", "Toyota", "HiAce", "Van", "BN-1", 2018, 2800, 1900, 1950, 900, 2024, "2025-06-30", archived)
}

func TestVanRepositoryListIncludesArchived(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewVanRepository(db)

	rows := vanRows()
	addVanRow(rows, 1, "ABC-1234", false)
	addVanRow(rows, 2, "XYZ-9876", true)
	mock.ExpectQuery(`SELECT .+ FROM vans ORDER BY plate_number`).WillReturnRows(rows)

	vans, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vans, 2)
	assert.True(t, vans[1].Archived)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVanRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewVanRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM vans WHERE archived = FALSE ORDER BY plate_number`).
		WillReturnRows(addVanRow(vanRows(), 1, "ABC-1234", false))

	vans, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, vans, 1)
	assert.Equal(t, "ABC-1234", vans[0].PlateNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVanRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewVanRepository(db)

	mock.ExpectQuery("INSERT INTO vans").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	van := &models.Van{MVFileNo: "MV-001", PlateNumber: "ABC-1234", EngineNo: "ENG-1", ChassisNo: "CHS-1"}
	require.NoError(t, repo.Create(context.Background(), van))
	assert.Equal(t, int64(11), van.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVanRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewVanRepository(db)

	mock.ExpectExec("UPDATE vans SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	van := &models.Van{ID: 404, MVFileNo: "MV-001", PlateNumber: "ABC-1234"}
	assert.ErrorIs(t, repo.Update(context.Background(), van), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVanRepositoryArchive(t *testing.T) {
	db, mock, cleanup := newRepositoryMock(t)
	defer cleanup()
	repo := NewVanRepository(db)

	mock.ExpectExec(`UPDATE vans SET archived = TRUE WHERE id = \$1 AND archived = FALSE`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Archive(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
