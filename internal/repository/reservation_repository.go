package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/utils"
)

// ReservationRepo provides booking, release and listing of
// reservations. Booking and release both run inside transactions: a
// booking must atomically claim an available spot against concurrent
// bookers, and a release must close the reservation and free the spot
// as one unit. All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Reservation mirrors the 'reservations' table. CostPerHour is a price
// snapshot taken at booking time and is immune to later lot price
// changes. LeavingTimestamp and TotalCost stay nil while the
// reservation is active.
type Reservation struct {
	ID               uint64
	SpotID           uint64
	UserID           uint64
	ParkingTimestamp time.Time
	LeavingTimestamp *time.Time
	CostPerHour      float64
	TotalCost        *float64
	IsActive         bool
}

// ReservationDetail is the read model for user dashboards: the
// reservation plus its spot label and lot name.
type ReservationDetail struct {
	Reservation
	SpotNumber string
	LotName    string
}

// ErrReservationNotFound is returned when a reservation lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// Book claims the lowest-id available spot of the lot for the user. The
// spot row is locked with SELECT ... FOR UPDATE before it is flipped to
// occupied, so two concurrent bookers can never be assigned the same
// spot; the loser either locks the next free spot or gets
// ErrNoAvailability. The lot's current price is captured on the
// reservation as the billing rate.
func (r *ReservationRepo) Book(ctx context.Context, lotID, userID uint64) (*ReservationDetail, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var price float64
	var lotName string
	err = tx.QueryRowContext(ctx,
		`SELECT price, prime_location_name FROM parking_lots WHERE id = ?`, lotID).
		Scan(&price, &lotName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}

	var spotID uint64
	var spotNumber string
	err = tx.QueryRowContext(ctx,
		`SELECT id, spot_number FROM parking_spots
		 WHERE lot_id = ? AND status = 'A'
		 ORDER BY id LIMIT 1 FOR UPDATE`, lotID).
		Scan(&spotID, &spotNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoAvailability
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE parking_spots SET status = 'O' WHERE id = ?`, spotID); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (spot_id, user_id, parking_timestamp, parking_cost_per_hour, is_active)
		 VALUES (?, ?, ?, ?, 1)`,
		spotID, userID, now, price)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &ReservationDetail{
		Reservation: Reservation{
			ID:               uint64(id),
			SpotID:           spotID,
			UserID:           userID,
			ParkingTimestamp: now,
			CostPerHour:      price,
			IsActive:         true,
		},
		SpotNumber: spotNumber,
		LotName:    lotName,
	}, nil
}

// Release closes an active reservation owned by the user and frees its
// spot. It fails with ErrReservationNotFound when the reservation does
// not exist, ErrForbidden when it belongs to someone else and
// ErrReservationClosed when it was already released; a closed
// reservation's cost is never recomputed. The charge covers at least
// one full hour regardless of the actual elapsed time.
func (r *ReservationRepo) Release(ctx context.Context, reservationID, userID uint64) (*ReservationDetail, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		resv       Reservation
		active     int
		spotNumber string
		lotName    string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT res.id, res.spot_id, res.user_id, res.parking_timestamp, res.parking_cost_per_hour, res.is_active,
		        s.spot_number, l.prime_location_name
		 FROM reservations res
		 JOIN parking_spots s ON s.id = res.spot_id
		 JOIN parking_lots l ON l.id = s.lot_id
		 WHERE res.id = ? FOR UPDATE`, reservationID).
		Scan(&resv.ID, &resv.SpotID, &resv.UserID, &resv.ParkingTimestamp, &resv.CostPerHour, &active,
			&spotNumber, &lotName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if resv.UserID != userID {
		return nil, ErrForbidden
	}
	if active == 0 {
		return nil, ErrReservationClosed
	}

	now := time.Now().UTC().Truncate(time.Second)
	total := utils.TotalCost(resv.ParkingTimestamp, now, resv.CostPerHour)

	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET leaving_timestamp = ?, total_cost = ?, is_active = 0 WHERE id = ?`,
		now, total, reservationID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE parking_spots SET status = 'A' WHERE id = ?`, resv.SpotID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	resv.LeavingTimestamp = &now
	resv.TotalCost = &total
	resv.IsActive = false
	return &ReservationDetail{Reservation: resv, SpotNumber: spotNumber, LotName: lotName}, nil
}

// ListActiveByUser returns every active reservation of a user, newest
// first.
func (r *ReservationRepo) ListActiveByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	return r.listByUser(ctx, userID, true, 0)
}

// ListPastByUser returns the user's closed reservations, newest first,
// bounded to the given limit.
func (r *ReservationRepo) ListPastByUser(ctx context.Context, userID uint64, limit int) ([]ReservationDetail, error) {
	return r.listByUser(ctx, userID, false, limit)
}

func (r *ReservationRepo) listByUser(ctx context.Context, userID uint64, active bool, limit int) ([]ReservationDetail, error) {
	q := `SELECT res.id, res.spot_id, res.user_id, res.parking_timestamp, res.leaving_timestamp,
	             res.parking_cost_per_hour, res.total_cost, res.is_active,
	             s.spot_number, l.prime_location_name
	      FROM reservations res
	      JOIN parking_spots s ON s.id = res.spot_id
	      JOIN parking_lots l ON l.id = s.lot_id
	      WHERE res.user_id = ? AND res.is_active = ?
	      ORDER BY res.parking_timestamp DESC`
	args := []interface{}{userID, active}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReservationDetail
	for rows.Next() {
		var d ReservationDetail
		var leaving sql.NullTime
		var total sql.NullFloat64
		if err := rows.Scan(&d.ID, &d.SpotID, &d.UserID, &d.ParkingTimestamp, &leaving,
			&d.CostPerHour, &total, &d.IsActive, &d.SpotNumber, &d.LotName); err != nil {
			return nil, err
		}
		if leaving.Valid {
			t := leaving.Time
			d.LeavingTimestamp = &t
		}
		if total.Valid {
			v := total.Float64
			d.TotalCost = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
