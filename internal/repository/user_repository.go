package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
	"github.com/Hostizzy/hostizzy-pms/internal/utils"
)

// UserRepo provides account operations over the profiles table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a profile with a bcrypt-hashed password and returns the
// new ID.  A duplicate email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, bcryptCost int) (uint64, error) {
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO profiles (role, name, email, password_hash, is_active) VALUES (?, ?, ?, ?, 1)`
	res, err := r.db.ExecContext(ctx, q, role, name, email, hash)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail loads a profile by email.  sql.ErrNoRows when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	const q = `SELECT id, role, name, email, password_hash, phone, is_active, created_at, updated_at
	           FROM profiles WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

// GetByID loads a profile by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.Profile, error) {
	const q = `SELECT id, role, name, email, password_hash, phone, is_active, created_at, updated_at
	           FROM profiles WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// UpdateRole changes a profile's role.  sql.ErrNoRows when the profile
// does not exist.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE profiles SET role = ? WHERE id = ?`, role, id)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (*model.Profile, error) {
	var p model.Profile
	var phone sql.NullString
	err := row.Scan(&p.ID, &p.Role, &p.Name, &p.Email, &p.PasswordHash, &phone,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	return &p, nil
}
