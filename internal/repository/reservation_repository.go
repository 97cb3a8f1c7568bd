package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
	"github.com/Hostizzy/hostizzy-pms/internal/availability"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// ReservationRepo provides CRUD over the reservations table.  Every read
// takes the caller's access scope; nothing here queries reservations
// unscoped.  NULL monetary columns are normalized to zero at scan time —
// this is the single missing-as-zero conversion point, so the analytics
// and handler layers never see absent amounts.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, reservation_code, property_id, primary_guest_id, channel,
	check_in, check_out, adults, children, total_guests, status,
	base_rate_per_night, extra_guest_fee_total, cleaning_fee_total, taxes_total,
	discount_total, total_amount, currency, notes, created_by, created_at, updated_at`

// Create inserts a reservation and, when a primary guest is set, the
// matching reservation_guests link, in one transaction.  The property
// row is locked with SELECT ... FOR UPDATE and the conflict scan re-runs
// inside the transaction, so two concurrent creates for the same
// property serialize and the loser sees the winner's row.  A
// non-bookable decision is a normal result, returned with a nil error;
// the record is only inserted when the decision is bookable.  The
// generated ID and DB-side timestamps are populated on the provided
// record.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) (availability.Decision, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return availability.Decision{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var locked uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM properties WHERE id = ? FOR UPDATE`, res.PropertyID).Scan(&locked); err != nil {
		return availability.Decision{}, err
	}

	existing, err := conflictCandidatesTx(ctx, tx, res.PropertyID)
	if err != nil {
		return availability.Decision{}, err
	}
	blocks, err := blocksForPropertyTx(ctx, tx, res.PropertyID)
	if err != nil {
		return availability.Decision{}, err
	}
	decision, err := availability.Check(res.CheckIn, res.CheckOut, existing, blocks)
	if err != nil || !decision.Bookable {
		return decision, err
	}

	const q = `INSERT INTO reservations
	           (reservation_code, property_id, primary_guest_id, channel, check_in, check_out,
	            adults, children, total_guests, status, base_rate_per_night, extra_guest_fee_total,
	            cleaning_fee_total, taxes_total, discount_total, total_amount, currency, notes, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.Code, res.PropertyID, res.PrimaryGuestID, res.Channel,
		res.CheckIn.Format("2006-01-02"), res.CheckOut.Format("2006-01-02"),
		res.Adults, res.Children, res.TotalGuests, res.Status,
		res.BaseRatePerNight, res.ExtraGuestFeeTotal, res.CleaningFeeTotal,
		res.TaxesTotal, res.DiscountTotal, res.TotalAmount, res.Currency,
		res.Notes, res.CreatedBy)
	if err != nil {
		return decision, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return decision, err
	}
	res.ID = uint64(id)

	if res.PrimaryGuestID != nil {
		const link = `INSERT INTO reservation_guests (reservation_id, guest_id, role) VALUES (?, ?, 'primary')`
		if _, err := tx.ExecContext(ctx, link, res.ID, *res.PrimaryGuestID); err != nil {
			return decision, err
		}
	}

	// Read back DB-side defaults so the caller sees the stored row.
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return decision, err
	}
	return decision, tx.Commit()
}

// conflictCandidatesTx is the in-transaction conflict scan behind
// Create.  It loads only the columns the availability check reads.
func conflictCandidatesTx(ctx context.Context, tx *sql.Tx, propertyID uint64) ([]model.Reservation, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, reservation_code, check_in, check_out, status
		 FROM reservations WHERE property_id = ? AND status <> 'cancelled'`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.Code, &res.CheckIn, &res.CheckOut, &res.Status); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func blocksForPropertyTx(ctx context.Context, tx *sql.Tx, propertyID uint64) ([]model.AvailabilityBlock, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, property_id, start_date, end_date FROM availability_blocks WHERE property_id = ?`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AvailabilityBlock{}
	for rows.Next() {
		var b model.AvailabilityBlock
		if err := rows.Scan(&b.ID, &b.PropertyID, &b.StartDate, &b.EndDate); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetScoped loads a reservation the caller may see.  It returns
// sql.ErrNoRows when the reservation does not exist and ErrForbidden
// when it exists outside the caller's scope.
func (r *ReservationRepo) GetScoped(ctx context.Context, id uint64, scope access.Scope) (*model.Reservation, error) {
	res, err := r.getByWhere(ctx, `id = ?`, id)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(res.PropertyID) {
		return nil, ErrForbidden
	}
	return res, nil
}

// GetByCode loads a reservation by its human-readable code.  Used by the
// public KYC form, which authenticates by knowing the code.
func (r *ReservationRepo) GetByCode(ctx context.Context, code string) (*model.Reservation, error) {
	return r.getByWhere(ctx, `reservation_code = ?`, code)
}

// ListFilter narrows ListScoped.  Zero values mean "no restriction".
type ListFilter struct {
	PropertyID uint64
	Status     string
	From       time.Time // check_in >= From
	To         time.Time // check_in <= To
	Limit      int
}

// ListScoped returns reservations visible to the scope, newest first.
func (r *ReservationRepo) ListScoped(ctx context.Context, scope access.Scope, f ListFilter) ([]model.Reservation, error) {
	clause, scopeArgs, ok := scopeClause("property_id", scope)
	if !ok {
		return []model.Reservation{}, nil
	}
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1` + clause
	args := scopeArgs
	if f.PropertyID != 0 {
		q += ` AND property_id = ?`
		args = append(args, f.PropertyID)
	}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if !f.From.IsZero() {
		q += ` AND check_in >= ?`
		args = append(args, f.From.Format("2006-01-02"))
	}
	if !f.To.IsZero() {
		q += ` AND check_in <= ?`
		args = append(args, f.To.Format("2006-01-02"))
	}
	q += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	return r.queryMany(ctx, q, args...)
}

// Recent returns the latest reservations in scope for the dashboard.
func (r *ReservationRepo) Recent(ctx context.Context, scope access.Scope, limit int) ([]model.Reservation, error) {
	return r.ListScoped(ctx, scope, ListFilter{Limit: limit})
}

// UpcomingCheckIns returns confirmed reservations checking in within the
// inclusive [from, to] window, soonest first.
func (r *ReservationRepo) UpcomingCheckIns(ctx context.Context, scope access.Scope, from, to time.Time, limit int) ([]model.Reservation, error) {
	clause, scopeArgs, ok := scopeClause("property_id", scope)
	if !ok {
		return []model.Reservation{}, nil
	}
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE status = 'confirmed' AND check_in >= ? AND check_in <= ?` + clause +
		` ORDER BY check_in ASC LIMIT ?`
	args := append([]any{from.Format("2006-01-02"), to.Format("2006-01-02")}, scopeArgs...)
	args = append(args, limit)
	return r.queryMany(ctx, q, args...)
}

// ConflictCandidates returns the property's non-cancelled reservations,
// the conflict set for an availability check.
func (r *ReservationRepo) ConflictCandidates(ctx context.Context, propertyID uint64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE property_id = ? AND status <> 'cancelled' ORDER BY check_in`
	return r.queryMany(ctx, q, propertyID)
}

// SetPrimaryGuest points the reservation at its lead guest.  Only the
// first assignment wins; a reservation that already has a primary guest
// is left untouched.
func (r *ReservationRepo) SetPrimaryGuest(ctx context.Context, reservationID, guestID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET primary_guest_id = ? WHERE id = ? AND primary_guest_id IS NULL`,
		guestID, reservationID)
	return err
}

// UpdateStatus applies a status transition under the caller's scope.  It
// returns ErrForbidden for out-of-scope reservations and
// ErrInvalidTransition when the change is not legal from the current
// status.  The updated row is returned on success.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, next string, scope access.Scope) (*model.Reservation, error) {
	res, err := r.GetScoped(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	if !res.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	const q = `UPDATE reservations SET status = ? WHERE id = ? AND status = ?`
	result, err := r.db.ExecContext(ctx, q, next, id, res.Status)
	if err != nil {
		return nil, err
	}
	// A concurrent transition may have won; report it as a conflict.
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, ErrConflict
	}
	res.Status = next
	return res, nil
}

func (r *ReservationRepo) getByWhere(ctx context.Context, where string, arg any) (*model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE `+where, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	return scanReservation(rows)
}

func (r *ReservationRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// nzd is the missing-as-zero conversion: NULL decimal columns become
// decimal zero exactly once, here at the scan boundary.
func nzd(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

func scanReservation(rows *sql.Rows) (*model.Reservation, error) {
	var res model.Reservation
	var primaryGuest, createdBy sql.NullInt64
	var channel, currency, notes sql.NullString
	var baseRate, extraFee, cleaningFee, taxes, discount, total decimal.NullDecimal
	err := rows.Scan(&res.ID, &res.Code, &res.PropertyID, &primaryGuest, &channel,
		&res.CheckIn, &res.CheckOut, &res.Adults, &res.Children, &res.TotalGuests, &res.Status,
		&baseRate, &extraFee, &cleaningFee, &taxes, &discount, &total,
		&currency, &notes, &createdBy, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if primaryGuest.Valid {
		v := uint64(primaryGuest.Int64)
		res.PrimaryGuestID = &v
	}
	if createdBy.Valid {
		v := uint64(createdBy.Int64)
		res.CreatedBy = &v
	}
	if channel.Valid {
		res.Channel = channel.String
	}
	if currency.Valid {
		res.Currency = currency.String
	}
	if notes.Valid {
		res.Notes = &notes.String
	}
	res.BaseRatePerNight = nzd(baseRate)
	res.ExtraGuestFeeTotal = nzd(extraFee)
	res.CleaningFeeTotal = nzd(cleaningFee)
	res.TaxesTotal = nzd(taxes)
	res.DiscountTotal = nzd(discount)
	res.TotalAmount = nzd(total)
	return &res, nil
}
