package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/repository"
)

func TestPublicParkingLotsEmptyIsArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM parking_lots l").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "address", "pin_code", "total", "available"}))

	h := NewPublicHandler(repository.NewLotRepo(db), repository.NewSpotRepo(db))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/parking_lots", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ParkingLots(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	// An empty listing is a JSON array, never null.
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPublicParkingLotsListsSummaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM parking_lots l").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "address", "pin_code", "total", "available"}).
			AddRow(1, "Lakeview", 10.0, "12 Shore Rd", "560001", 5, 2))

	h := NewPublicHandler(repository.NewLotRepo(db), repository.NewSpotRepo(db))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/parking_lots", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ParkingLots(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Lakeview", out[0]["name"])
	assert.EqualValues(t, 2, out[0]["available_spots"])
}

func TestPublicSearchSpotRequiresParam(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewPublicHandler(repository.NewLotRepo(db), repository.NewSpotRepo(db))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search_spot", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.SearchSpot(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicSearchSpotUnknownLabel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM parking_spots s").
		WithArgs("ZZZ-999").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lot_id", "spot_number", "status", "prime_location_name", "res_id", "username", "since"}))

	h := NewPublicHandler(repository.NewLotRepo(db), repository.NewSpotRepo(db))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search_spot?spot_number=ZZZ-999", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.SearchSpot(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicSearchSpotOccupied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM parking_spots s").
		WithArgs("LAK-002").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lot_id", "spot_number", "status", "prime_location_name", "res_id", "username", "since"}).
			AddRow(42, 1, "LAK-002", repository.SpotOccupied, "Lakeview", 9, "bob", "2026-03-01T10:00:00Z"))

	h := NewPublicHandler(repository.NewLotRepo(db), repository.NewSpotRepo(db))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search_spot?spot_number=LAK-002", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.SearchSpot(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Occupied", out["status"])
	assert.Equal(t, "Lakeview", out["lot_name"])
	assert.Equal(t, "bob", out["user"])
	assert.Equal(t, "2026-03-01T10:00:00Z", out["parked_since"])
}

func TestPublicSearchSpotAvailableOmitsOccupant(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM parking_spots s").
		WithArgs("LAK-001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lot_id", "spot_number", "status", "prime_location_name", "res_id", "username", "since"}).
			AddRow(41, 1, "LAK-001", repository.SpotAvailable, "Lakeview", nil, nil, nil))

	h := NewPublicHandler(repository.NewLotRepo(db), repository.NewSpotRepo(db))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search_spot?spot_number=LAK-001", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.SearchSpot(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Available", out["status"])
	assert.NotContains(t, out, "user")
	assert.NotContains(t, out, "parked_since")
}
