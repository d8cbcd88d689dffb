package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/utils"
)

// ParkingLot mirrors the 'parking_lots' table. Price is the hourly rate
// charged while a spot in this lot is occupied. MaxSpots is the
// configured capacity; after any successful create or edit the number
// of owned spot rows equals this value.
type ParkingLot struct {
	ID        uint64
	Name      string // prime_location_name
	Price     float64
	Address   string
	PinCode   string
	MaxSpots  int // maximum_number_of_spots
	CreatedAt time.Time
}

// LotSummary is the public read model for a lot: the scalar fields plus
// the current number of available spots.
type LotSummary struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Address        string  `json:"address"`
	PinCode        string  `json:"pin_code"`
	TotalSpots     int     `json:"total_spots"`
	AvailableSpots int     `json:"available_spots"`
}

// DashboardStats aggregates live occupancy across all lots. Everything
// is recomputed at request time; nothing is cached in the database.
type DashboardStats struct {
	TotalLots      int `json:"total_lots"`
	TotalSpots     int `json:"total_spots"`
	OccupiedSpots  int `json:"occupied_spots"`
	AvailableSpots int `json:"available_spots"`
	TotalUsers     int `json:"total_users"`
}

// ErrLotNotFound is returned when a lot lookup yields no rows.
var ErrLotNotFound = errors.New("parking lot not found")

// LotRepo provides methods to create, edit and delete parking lots
// together with the spot set each lot owns. Capacity reconciliation
// happens inside transactions so a concurrent booking can never race a
// shrinking edit.
type LotRepo struct {
	db *sql.DB
}

// NewLotRepo constructs a LotRepo with the given DB handle.
func NewLotRepo(db *sql.DB) *LotRepo {
	return &LotRepo{db: db}
}

// Create inserts the lot and its initial batch of spots in one
// transaction. Spots are labelled with the deterministic scheme
// PREFIX-001..PREFIX-NNN derived from the lot name. On success the
// lot's ID and CreatedAt are populated.
func (r *LotRepo) Create(ctx context.Context, lot *ParkingLot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO parking_lots (prime_location_name, price, address, pin_code, maximum_number_of_spots)
		 VALUES (?, ?, ?, ?, ?)`,
		lot.Name, lot.Price, lot.Address, lot.PinCode, lot.MaxSpots)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	lot.ID = uint64(id)

	if err := insertSpotsTx(ctx, tx, lot.ID, lot.Name, 1, lot.MaxSpots); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM parking_lots WHERE id = ?`, lot.ID).Scan(&lot.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID retrieves a lot by its ID. Returns ErrLotNotFound when no row
// is found.
func (r *LotRepo) GetByID(ctx context.Context, id uint64) (*ParkingLot, error) {
	const q = `SELECT id, prime_location_name, price, address, pin_code, maximum_number_of_spots, created_at
	           FROM parking_lots WHERE id = ?`
	var l ParkingLot
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&l.ID, &l.Name, &l.Price, &l.Address, &l.PinCode, &l.MaxSpots, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns all lots ordered by id.
func (r *LotRepo) List(ctx context.Context) ([]ParkingLot, error) {
	const q = `SELECT id, prime_location_name, price, address, pin_code, maximum_number_of_spots, created_at
	           FROM parking_lots ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ParkingLot
	for rows.Next() {
		var l ParkingLot
		if err := rows.Scan(&l.ID, &l.Name, &l.Price, &l.Address, &l.PinCode, &l.MaxSpots, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update rewrites the lot's scalar fields and reconciles the spot set
// with the requested capacity, all inside one transaction:
//
//   - growth appends spots continuing the sequence at the current count
//     plus one, labelled with the (possibly just-changed) name prefix;
//   - shrink deletes available spots only, lowest id first. When fewer
//     available spots exist than the requested reduction, the capacity
//     stored on the lot is clamped to the spot count actually reached.
//
// Returns ErrLotNotFound if the lot does not exist. The lot's MaxSpots
// field reflects the stored (possibly clamped) capacity on return.
func (r *LotRepo) Update(ctx context.Context, lot *ParkingLot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the lot row first so concurrent edits serialize per lot.
	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT maximum_number_of_spots FROM parking_lots WHERE id = ? FOR UPDATE`,
		lot.ID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLotNotFound
		}
		return err
	}

	var spotCount int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parking_spots WHERE lot_id = ?`, lot.ID).Scan(&spotCount); err != nil {
		return err
	}

	achieved := spotCount
	switch {
	case lot.MaxSpots > spotCount:
		if err := insertSpotsTx(ctx, tx, lot.ID, lot.Name, spotCount+1, lot.MaxSpots); err != nil {
			return err
		}
		achieved = lot.MaxSpots
	case lot.MaxSpots < spotCount:
		removed, err := deleteAvailableSpotsTx(ctx, tx, lot.ID, spotCount-lot.MaxSpots)
		if err != nil {
			return err
		}
		achieved = spotCount - removed
	}
	// Clamp: capacity always matches the spot rows that actually exist.
	lot.MaxSpots = achieved

	_, err = tx.ExecContext(ctx,
		`UPDATE parking_lots
		 SET prime_location_name = ?, price = ?, address = ?, pin_code = ?, maximum_number_of_spots = ?
		 WHERE id = ?`,
		lot.Name, lot.Price, lot.Address, lot.PinCode, lot.MaxSpots, lot.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a lot and, through the FK cascade, all of its spots.
// It fails with ErrConflict when any spot in the lot is occupied and
// with ErrLotNotFound when the lot does not exist. Reservation history
// is not inspected; only live occupancy blocks deletion.
func (r *LotRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM parking_lots WHERE id = ? FOR UPDATE`, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLotNotFound
		}
		return err
	}

	var occupied int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parking_spots WHERE lot_id = ? AND status = 'O'`, id).Scan(&occupied); err != nil {
		return err
	}
	if occupied > 0 {
		return ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM parking_lots WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ListSummaries returns the public view of every lot including its
// available-spot count.
func (r *LotRepo) ListSummaries(ctx context.Context) ([]LotSummary, error) {
	const q = `SELECT l.id, l.prime_location_name, l.price, l.address, l.pin_code, l.maximum_number_of_spots,
	                  COALESCE(SUM(CASE WHEN s.status = 'A' THEN 1 ELSE 0 END), 0)
	           FROM parking_lots l
	           LEFT JOIN parking_spots s ON s.lot_id = l.id
	           GROUP BY l.id, l.prime_location_name, l.price, l.address, l.pin_code, l.maximum_number_of_spots
	           ORDER BY l.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LotSummary
	for rows.Next() {
		var s LotSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Address, &s.PinCode, &s.TotalSpots, &s.AvailableSpots); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Stats recomputes the admin dashboard aggregates in a single round of
// queries.
func (r *LotRepo) Stats(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(maximum_number_of_spots), 0) FROM parking_lots`).
		Scan(&st.TotalLots, &st.TotalSpots)
	if err != nil {
		return st, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parking_spots WHERE status = 'O'`).Scan(&st.OccupiedSpots); err != nil {
		return st, err
	}
	st.AvailableSpots = st.TotalSpots - st.OccupiedSpots
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username <> ?`, AdminUsername).Scan(&st.TotalUsers); err != nil {
		return st, err
	}
	return st, nil
}

// insertSpotsTx creates spots numbered from..to (inclusive) for the lot
// in one bulk INSERT. Labels follow the PREFIX-NNN scheme.
func insertSpotsTx(ctx context.Context, tx *sql.Tx, lotID uint64, lotName string, from, to int) error {
	if to < from {
		return nil
	}
	query := `INSERT INTO parking_spots (lot_id, spot_number, status) VALUES `
	args := make([]interface{}, 0, (to-from+1)*2)
	for i := from; i <= to; i++ {
		if i > from {
			query += ","
		}
		query += "(?, ?, 'A')"
		args = append(args, lotID, utils.SpotLabel(lotName, i))
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// deleteAvailableSpotsTx removes up to n available spots from the lot,
// lowest id first, and returns how many rows were deleted. Rows are
// locked before deletion so an in-flight booking cannot grab one of the
// selected spots.
func deleteAvailableSpotsTx(ctx context.Context, tx *sql.Tx, lotID uint64, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM parking_spots WHERE lot_id = ? AND status = 'A' ORDER BY id LIMIT ? FOR UPDATE`,
		lotID, n)
	if err != nil {
		return 0, err
	}
	var ids []interface{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM parking_spots WHERE id IN (?` + repeatPlaceholder(len(ids)-1) + `)`
	res, err := tx.ExecContext(ctx, query, ids...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// repeatPlaceholder returns n copies of ",?" for IN clause building.
func repeatPlaceholder(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += ",?"
	}
	return s
}
