package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotRepoCreateInsertsLotAndSpots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO parking_lots").
		WithArgs("Lakeview", 10.0, "12 Shore Rd", "560001", 3).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO parking_spots").
		WithArgs(7, "LAK-001", 7, "LAK-002", 7, "LAK-003").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("SELECT created_at FROM parking_lots").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectCommit()

	repo := NewLotRepo(db)
	lot := &ParkingLot{Name: "Lakeview", Price: 10.0, Address: "12 Shore Rd", PinCode: "560001", MaxSpots: 3}
	require.NoError(t, repo.Create(context.Background(), lot))

	assert.Equal(t, uint64(7), lot.ID)
	assert.Equal(t, created, lot.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepoUpdateGrowsCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT maximum_number_of_spots FROM parking_lots").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"maximum_number_of_spots"}).AddRow(3))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	// Growth continues the label sequence after the existing spots.
	mock.ExpectExec("INSERT INTO parking_spots").
		WithArgs(7, "LAK-004", 7, "LAK-005").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE parking_lots").
		WithArgs("Lakeview", 12.5, "12 Shore Rd", "560001", 5, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewLotRepo(db)
	lot := &ParkingLot{ID: 7, Name: "Lakeview", Price: 12.5, Address: "12 Shore Rd", PinCode: "560001", MaxSpots: 5}
	require.NoError(t, repo.Update(context.Background(), lot))

	assert.Equal(t, 5, lot.MaxSpots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepoUpdateShrinkClampsToOccupied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Five spots exist, the edit asks for two, but only one spot is
	// still available. The other four are occupied, so the stored
	// capacity lands on four rather than two.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT maximum_number_of_spots FROM parking_lots").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"maximum_number_of_spots"}).AddRow(5))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery("SELECT id FROM parking_spots WHERE lot_id").
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec("DELETE FROM parking_spots WHERE id IN").
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE parking_lots").
		WithArgs("Lakeview", 10.0, "12 Shore Rd", "560001", 4, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewLotRepo(db)
	lot := &ParkingLot{ID: 7, Name: "Lakeview", Price: 10.0, Address: "12 Shore Rd", PinCode: "560001", MaxSpots: 2}
	require.NoError(t, repo.Update(context.Background(), lot))

	assert.Equal(t, 4, lot.MaxSpots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepoUpdateMissingLot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT maximum_number_of_spots FROM parking_lots").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"maximum_number_of_spots"}))
	mock.ExpectRollback()

	repo := NewLotRepo(db)
	lot := &ParkingLot{ID: 99, Name: "Ghost", MaxSpots: 1}
	err = repo.Update(context.Background(), lot)
	assert.ErrorIs(t, err, ErrLotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepoDeleteRefusesOccupiedLot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM parking_lots").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	repo := NewLotRepo(db)
	err = repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepoDeleteEmptyLot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM parking_lots").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM parking_lots").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewLotRepo(db)
	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepoListSummaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "prime_location_name", "price", "address", "pin_code", "maximum_number_of_spots", "available"}).
		AddRow(1, "Lakeview", 10.0, "12 Shore Rd", "560001", 5, 2).
		AddRow(2, "Downtown", 25.0, "4 Main St", "560002", 10, 10)
	mock.ExpectQuery("FROM parking_lots l").WillReturnRows(rows)

	repo := NewLotRepo(db)
	out, err := repo.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Lakeview", out[0].Name)
	assert.Equal(t, 2, out[0].AvailableSpots)
	assert.Equal(t, 10, out[1].AvailableSpots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepoStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM parking_lots").
		WillReturnRows(sqlmock.NewRows([]string{"lots", "spots"}).AddRow(2, 15))
	mock.ExpectQuery("FROM parking_spots").
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(3))
	mock.ExpectQuery("FROM users").
		WithArgs(AdminUsername).
		WillReturnRows(sqlmock.NewRows([]string{"users"}).AddRow(8))

	repo := NewLotRepo(db)
	st, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalLots: 2, TotalSpots: 15, OccupiedSpots: 3, AvailableSpots: 12, TotalUsers: 8}, st)
	assert.NoError(t, mock.ExpectationsWereMet())
}
