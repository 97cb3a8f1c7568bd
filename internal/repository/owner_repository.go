package repository

import (
	"context"
	"database/sql"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// OwnerRepo provides CRUD over the owners table.  Owner rows are the
// commercial entities that property_owners links properties to; an
// owner may optionally reference a login profile via user_id, which is
// what gives the owner role its portfolio scope.
type OwnerRepo struct {
	db *sql.DB
}

// NewOwnerRepo returns a new OwnerRepo bound to the given database.
func NewOwnerRepo(db *sql.DB) *OwnerRepo { return &OwnerRepo{db: db} }

// Create inserts an owner record and populates its generated ID and
// created_at.  When UserID is set the referenced profile must exist;
// the foreign key rejects dangling links.
func (r *OwnerRepo) Create(ctx context.Context, o *model.Owner) error {
	const q = `INSERT INTO owners (user_id, company_name, gstin, phone, email) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, o.UserID, o.CompanyName, o.GSTIN, o.Phone, o.Email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	const sel = `SELECT created_at FROM owners WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt)
}

const ownerColumns = `id, user_id, company_name, gstin, phone, email, created_at`

// GetByID loads an owner by primary key.  sql.ErrNoRows when absent.
func (r *OwnerRepo) GetByID(ctx context.Context, id uint64) (*model.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = ?`, id)
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
	return scanOwner(rows)
}

// List returns every owner, newest first.
func (r *OwnerRepo) List(ctx context.Context) ([]model.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ownerColumns+` FROM owners ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Owner{}
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOwner(rows *sql.Rows) (*model.Owner, error) {
	var o model.Owner
	var userID sql.NullInt64
	var company, gstin, phone, email sql.NullString
	if err := rows.Scan(&o.ID, &userID, &company, &gstin, &phone, &email, &o.CreatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		v := uint64(userID.Int64)
		o.UserID = &v
	}
	if company.Valid {
		o.CompanyName = &company.String
	}
	if gstin.Valid {
		o.GSTIN = &gstin.String
	}
	if phone.Valid {
		o.Phone = &phone.String
	}
	if email.Valid {
		o.Email = &email.String
	}
	return &o, nil
}
