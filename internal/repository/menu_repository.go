package repository

import (
	"context"
	"database/sql"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// MenuRepo provides CRUD over per-property menu items.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a new MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

const menuColumns = `id, property_id, menu_category, item_name, description, is_veg,
	price_per_person, min_order_qty, available_days, is_fixed_menu, is_optional, active,
	created_at, updated_at`

// Create inserts a menu item and populates the generated ID.
func (r *MenuRepo) Create(ctx context.Context, m *model.Menu) error {
	const q = `INSERT INTO menus
	           (property_id, menu_category, item_name, description, is_veg, price_per_person,
	            min_order_qty, available_days, is_fixed_menu, is_optional, active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.PropertyID, m.Category, m.ItemName, m.Description,
		m.IsVeg, m.PricePerPerson, m.MinOrderQty, m.AvailableDays, m.IsFixedMenu,
		m.IsOptional, m.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID loads one menu item.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*model.Menu, error) {
	q := `SELECT ` + menuColumns + ` FROM menus WHERE id = ?`
	var m model.Menu
	var description sql.NullString
	var days sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.PropertyID, &m.Category,
		&m.ItemName, &description, &m.IsVeg, &m.PricePerPerson, &m.MinOrderQty, &days,
		&m.IsFixedMenu, &m.IsOptional, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		m.Description = &description.String
	}
	if days.Valid {
		m.AvailableDays = days.String
	}
	return &m, nil
}

// Update rewrites a menu item's mutable fields.
func (r *MenuRepo) Update(ctx context.Context, m *model.Menu) error {
	const q = `UPDATE menus SET menu_category = ?, item_name = ?, description = ?, is_veg = ?,
	           price_per_person = ?, min_order_qty = ?, available_days = ?, is_fixed_menu = ?,
	           is_optional = ?, active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Category, m.ItemName, m.Description, m.IsVeg,
		m.PricePerPerson, m.MinOrderQty, m.AvailableDays, m.IsFixedMenu, m.IsOptional,
		m.Active, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a menu item.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListForProperty returns a property's menu items grouped by category.
// Set activeOnly to hide retired items.
func (r *MenuRepo) ListForProperty(ctx context.Context, propertyID uint64, activeOnly bool) ([]model.Menu, error) {
	q := `SELECT ` + menuColumns + ` FROM menus WHERE property_id = ?`
	if activeOnly {
		q += ` AND active = 1`
	}
	q += ` ORDER BY menu_category, item_name`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Menu{}
	for rows.Next() {
		var m model.Menu
		var description sql.NullString
		var days sql.NullString
		if err := rows.Scan(&m.ID, &m.PropertyID, &m.Category, &m.ItemName, &description,
			&m.IsVeg, &m.PricePerPerson, &m.MinOrderQty, &days, &m.IsFixedMenu,
			&m.IsOptional, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			m.Description = &description.String
		}
		if days.Valid {
			m.AvailableDays = days.String
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
