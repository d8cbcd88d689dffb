package repository // repository defines data access for parking spots

import (
	"context"
	"database/sql"
	"errors"
)

// Spot status values as stored in the 'parking_spots' table.
const (
	SpotAvailable = "A"
	SpotOccupied  = "O"
)

// Spot represents one bookable slot inside a lot. SpotNumber is the
// display label (lot name prefix plus a zero-padded sequence); labels
// are unique within a lot but not globally.
type Spot struct {
	ID         uint64
	LotID      uint64
	SpotNumber string
	Status     string // A = available, O = occupied
}

// SpotDetail joins a spot with its active reservation, if any. Fields
// carrying occupant information are nil for available spots.
type SpotDetail struct {
	Spot          Spot
	ReservationID *uint64
	Username      *string
	ParkedSince   *string // RFC3339, UTC
}

// ErrSpotNotFound is returned when a spot lookup yields no rows.
var ErrSpotNotFound = errors.New("spot not found")

// SpotRepo provides read access to spots. Status transitions happen
// inside booking/release transactions owned by ReservationRepo, and
// batch creation/removal inside lot transactions owned by LotRepo.
type SpotRepo struct {
	db *sql.DB
}

// NewSpotRepo constructs a SpotRepo with the given DB handle.
func NewSpotRepo(db *sql.DB) *SpotRepo {
	return &SpotRepo{db: db}
}

// GetByLot retrieves all spots of a lot ordered by id.
func (r *SpotRepo) GetByLot(ctx context.Context, lotID uint64) ([]Spot, error) {
	const q = `SELECT id, lot_id, spot_number, status FROM parking_spots WHERE lot_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Spot
	for rows.Next() {
		var s Spot
		if err := rows.Scan(&s.ID, &s.LotID, &s.SpotNumber, &s.Status); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetByLotWithOccupants returns every spot of a lot together with the
// active reservation and occupying user where one exists (read-only
// join, used by the admin spot view).
func (r *SpotRepo) GetByLotWithOccupants(ctx context.Context, lotID uint64) ([]SpotDetail, error) {
	const q = `SELECT s.id, s.lot_id, s.spot_number, s.status,
	                  res.id, u.username, DATE_FORMAT(res.parking_timestamp, '%Y-%m-%dT%H:%i:%sZ')
	           FROM parking_spots s
	           LEFT JOIN reservations res ON res.spot_id = s.id AND res.is_active = 1
	           LEFT JOIN users u ON u.id = res.user_id
	           WHERE s.lot_id = ?
	           ORDER BY s.id`
	rows, err := r.db.QueryContext(ctx, q, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SpotDetail
	for rows.Next() {
		var d SpotDetail
		var resID sql.NullInt64
		var username, since sql.NullString
		if err := rows.Scan(&d.Spot.ID, &d.Spot.LotID, &d.Spot.SpotNumber, &d.Spot.Status,
			&resID, &username, &since); err != nil {
			return nil, err
		}
		if resID.Valid {
			id := uint64(resID.Int64)
			d.ReservationID = &id
		}
		if username.Valid {
			v := username.String
			d.Username = &v
		}
		if since.Valid {
			v := since.String
			d.ParkedSince = &v
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// FindByLabel looks a spot up by its exact display label. Labels may
// repeat across lots; the first match by id wins, mirroring the
// public search endpoint's contract. When the spot is occupied the
// returned detail includes the occupant and the booking start time.
func (r *SpotRepo) FindByLabel(ctx context.Context, label string) (*SpotDetail, string, error) {
	const q = `SELECT s.id, s.lot_id, s.spot_number, s.status, l.prime_location_name,
	                  res.id, u.username, DATE_FORMAT(res.parking_timestamp, '%Y-%m-%dT%H:%i:%sZ')
	           FROM parking_spots s
	           JOIN parking_lots l ON l.id = s.lot_id
	           LEFT JOIN reservations res ON res.spot_id = s.id AND res.is_active = 1
	           LEFT JOIN users u ON u.id = res.user_id
	           WHERE s.spot_number = ?
	           ORDER BY s.id LIMIT 1`
	var d SpotDetail
	var lotName string
	var resID sql.NullInt64
	var username, since sql.NullString
	err := r.db.QueryRowContext(ctx, q, label).
		Scan(&d.Spot.ID, &d.Spot.LotID, &d.Spot.SpotNumber, &d.Spot.Status, &lotName,
			&resID, &username, &since)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrSpotNotFound
		}
		return nil, "", err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		d.ReservationID = &id
	}
	if username.Valid {
		v := username.String
		d.Username = &v
	}
	if since.Valid {
		v := since.String
		d.ParkedSince = &v
	}
	return &d, lotName, nil
}
