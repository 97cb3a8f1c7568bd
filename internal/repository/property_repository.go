package repository

import (
	"context"
	"database/sql"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// PropertyRepo provides CRUD over the properties table and the
// ownership/management association lookups backing access-scope
// resolution.  It satisfies access.PropertySource.
type PropertyRepo struct {
	db *sql.DB
}

// NewPropertyRepo returns a new PropertyRepo bound to the given database.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

const propertyColumns = `id, code, name, address, city, state, pincode, lat, lng, timezone,
	bedrooms, bathrooms, max_guests, has_pool, has_lawn, active, created_by, created_at, updated_at`

// Create inserts a property and populates the generated ID.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	const q = `INSERT INTO properties
	           (code, name, address, city, state, pincode, lat, lng, timezone,
	            bedrooms, bathrooms, max_guests, has_pool, has_lawn, active, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Code, p.Name, p.Address, p.City, p.State, p.Pincode, p.Lat, p.Lng, p.Timezone,
		p.Bedrooms, p.Bathrooms, p.MaxGuests, p.HasPool, p.HasLawn, p.Active, p.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites the mutable fields of a property.
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
	const q = `UPDATE properties SET name = ?, address = ?, city = ?, state = ?, pincode = ?,
	           lat = ?, lng = ?, timezone = ?, bedrooms = ?, bathrooms = ?, max_guests = ?,
	           has_pool = ?, has_lawn = ?, active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Name, p.Address, p.City, p.State, p.Pincode, p.Lat, p.Lng, p.Timezone,
		p.Bedrooms, p.Bathrooms, p.MaxGuests, p.HasPool, p.HasLawn, p.Active, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate soft-deletes a property.  Properties with future
// non-cancelled reservations cannot be deactivated (ErrConflict).
func (r *PropertyRepo) Deactivate(ctx context.Context, id uint64) error {
	const check = `SELECT COUNT(*) FROM reservations
	               WHERE property_id = ? AND status IN ('tentative','confirmed')
	                 AND check_out > UTC_DATE()`
	var n int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetByID loads a single property.  sql.ErrNoRows when absent.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (*model.Property, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
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
	return scanProperty(rows)
}

// ListScoped returns the active properties visible to the given scope,
// ordered by name.
func (r *PropertyRepo) ListScoped(ctx context.Context, scope access.Scope) ([]model.Property, error) {
	clause, args, ok := scopeClause("id", scope)
	if !ok {
		return []model.Property{}, nil
	}
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE active = 1` + clause + ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// OwnedPropertyIDs returns the active properties joined to an owner
// record whose account matches the user.
func (r *PropertyRepo) OwnedPropertyIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	const q = `SELECT p.id FROM properties p
	           JOIN property_owners po ON po.property_id = p.id
	           JOIN owners o ON o.id = po.owner_id
	           WHERE o.user_id = ? AND p.active = 1`
	return r.queryIDs(ctx, q, userID)
}

// ManagedPropertyIDs returns the active properties assigned to the
// manager.
func (r *PropertyRepo) ManagedPropertyIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	const q = `SELECT p.id FROM properties p
	           JOIN managers_properties mp ON mp.property_id = p.id
	           WHERE mp.manager_id = ? AND p.active = 1`
	return r.queryIDs(ctx, q, userID)
}

// AssignOwner links an owner record to a property.
func (r *PropertyRepo) AssignOwner(ctx context.Context, propertyID, ownerID uint64) error {
	const q = `INSERT INTO property_owners (property_id, owner_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, propertyID, ownerID)
	return err
}

// AssignManager links a manager profile to a property.
func (r *PropertyRepo) AssignManager(ctx context.Context, propertyID, managerID uint64) error {
	const q = `INSERT INTO managers_properties (property_id, manager_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, propertyID, managerID)
	return err
}

func (r *PropertyRepo) queryIDs(ctx context.Context, q string, args ...any) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
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

func scanProperty(rows *sql.Rows) (*model.Property, error) {
	var p model.Property
	var address, city, state, pincode, timezone sql.NullString
	var lat, lng sql.NullFloat64
	var bedrooms, bathrooms sql.NullInt64
	var createdBy sql.NullInt64
	err := rows.Scan(&p.ID, &p.Code, &p.Name, &address, &city, &state, &pincode,
		&lat, &lng, &timezone, &bedrooms, &bathrooms, &p.MaxGuests,
		&p.HasPool, &p.HasLawn, &p.Active, &createdBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if address.Valid {
		p.Address = &address.String
	}
	if city.Valid {
		p.City = &city.String
	}
	if state.Valid {
		p.State = &state.String
	}
	if pincode.Valid {
		p.Pincode = &pincode.String
	}
	if timezone.Valid {
		p.Timezone = &timezone.String
	}
	if lat.Valid {
		p.Lat = &lat.Float64
	}
	if lng.Valid {
		p.Lng = &lng.Float64
	}
	if bedrooms.Valid {
		v := int(bedrooms.Int64)
		p.Bedrooms = &v
	}
	if bathrooms.Valid {
		v := int(bathrooms.Int64)
		p.Bathrooms = &v
	}
	if createdBy.Valid {
		v := uint64(createdBy.Int64)
		p.CreatedBy = &v
	}
	return &p, nil
}
