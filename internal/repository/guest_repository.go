package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// GuestRepo provides CRUD over guests and their KYC documents.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// Create inserts a guest and populates the generated ID.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests (name, email, phone, address, city, state, pincode, dob)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.Name, g.Email, g.Phone, g.Address,
		g.City, g.State, g.Pincode, g.DOB)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID loads a guest.  sql.ErrNoRows when absent.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	const q = `SELECT id, name, email, phone, address, city, state, pincode, dob, created_at
	           FROM guests WHERE id = ?`
	var g model.Guest
	var phone, address, city, state, pincode, dob sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name, &g.Email,
		&phone, &address, &city, &state, &pincode, &dob, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		g.Phone = &phone.String
	}
	if address.Valid {
		g.Address = &address.String
	}
	if city.Valid {
		g.City = &city.String
	}
	if state.Valid {
		g.State = &state.String
	}
	if pincode.Valid {
		g.Pincode = &pincode.String
	}
	if dob.Valid {
		g.DOB = &dob.String
	}
	return &g, nil
}

// LinkToReservation attaches a guest to a reservation with the given
// role ("primary" or "secondary").
func (r *GuestRepo) LinkToReservation(ctx context.Context, reservationID, guestID uint64, role string) error {
	const q = `INSERT INTO reservation_guests (reservation_id, guest_id, role) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, reservationID, guestID, role)
	return err
}

// ListForReservation returns the guests attached to a reservation,
// primary first.
func (r *GuestRepo) ListForReservation(ctx context.Context, reservationID uint64) ([]model.Guest, error) {
	const q = `SELECT g.id, g.name, g.email, g.phone, g.address, g.city, g.state, g.pincode, g.dob, g.created_at
	           FROM guests g
	           JOIN reservation_guests rg ON rg.guest_id = g.id
	           WHERE rg.reservation_id = ?
	           ORDER BY rg.role = 'primary' DESC, g.name`
	rows, err := r.db.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Guest{}
	for rows.Next() {
		var g model.Guest
		var phone, address, city, state, pincode, dob sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &phone, &address,
			&city, &state, &pincode, &dob, &g.CreatedAt); err != nil {
			return nil, err
		}
		if phone.Valid {
			g.Phone = &phone.String
		}
		if address.Valid {
			g.Address = &address.String
		}
		if city.Valid {
			g.City = &city.String
		}
		if state.Valid {
			g.State = &state.String
		}
		if pincode.Valid {
			g.Pincode = &pincode.String
		}
		if dob.Valid {
			g.DOB = &dob.String
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// PropertyIDsForGuest returns the distinct properties of every
// reservation the guest is linked to.  Handlers use it to decide
// whether a restricted staff scope may read the guest at all.
func (r *GuestRepo) PropertyIDsForGuest(ctx context.Context, guestID uint64) ([]uint64, error) {
	const q = `SELECT DISTINCT r.property_id
	           FROM reservations r
	           JOIN reservation_guests rg ON rg.reservation_id = r.id
	           WHERE rg.guest_id = ?`
	rows, err := r.db.QueryContext(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertGuestID records an uploaded KYC document.
func (r *GuestRepo) InsertGuestID(ctx context.Context, gid *model.GuestID) error {
	const q = `INSERT INTO guest_ids
	           (guest_id, reservation_id, id_type, id_number, file_url, verified, collected_at, delete_after)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var collected any
	if gid.CollectedAt != nil {
		collected = gid.CollectedAt.UTC()
	}
	res, err := r.db.ExecContext(ctx, q, gid.GuestID, gid.ReservationID, gid.IDType,
		gid.IDNumber, gid.FileURL, gid.Verified, collected,
		gid.DeleteAfter.Format("2006-01-02"))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	gid.ID = uint64(id)
	return nil
}

// GetGuestID loads one KYC document record.
func (r *GuestRepo) GetGuestID(ctx context.Context, id uint64) (*model.GuestID, error) {
	const q = `SELECT id, guest_id, reservation_id, id_type, id_number, file_url, verified, collected_at, delete_after, created_at
	           FROM guest_ids WHERE id = ?`
	var g model.GuestID
	var fileURL sql.NullString
	var collectedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.GuestID, &g.ReservationID,
		&g.IDType, &g.IDNumber, &fileURL, &g.Verified, &collectedAt, &g.DeleteAfter, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	if fileURL.Valid {
		g.FileURL = &fileURL.String
	}
	if collectedAt.Valid {
		g.CollectedAt = &collectedAt.Time
	}
	return &g, nil
}

// ExpiredGuestIDs returns documents past their retention date that still
// have a stored file, for the cleanup pass.
func (r *GuestRepo) ExpiredGuestIDs(ctx context.Context, asOf time.Time) ([]model.GuestID, error) {
	const q = `SELECT id, guest_id, reservation_id, id_type, id_number, file_url, verified, collected_at, delete_after, created_at
	           FROM guest_ids WHERE delete_after < ? AND file_url IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, q, asOf.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.GuestID{}
	for rows.Next() {
		var g model.GuestID
		var fileURL sql.NullString
		var collectedAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.GuestID, &g.ReservationID, &g.IDType, &g.IDNumber,
			&fileURL, &g.Verified, &collectedAt, &g.DeleteAfter, &g.CreatedAt); err != nil {
			return nil, err
		}
		if fileURL.Valid {
			g.FileURL = &fileURL.String
		}
		if collectedAt.Valid {
			g.CollectedAt = &collectedAt.Time
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ClearFileURL wipes the stored object reference after the document is
// purged from object storage.
func (r *GuestRepo) ClearFileURL(ctx context.Context, guestIDRecord uint64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE guest_ids SET file_url = NULL WHERE id = ?`, guestIDRecord)
	return err
}
