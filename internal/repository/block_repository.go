package repository

import (
	"context"
	"database/sql"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// BlockRepo provides CRUD over availability_blocks.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo returns a new BlockRepo bound to the given database.
func NewBlockRepo(db *sql.DB) *BlockRepo { return &BlockRepo{db: db} }

const blockColumns = `id, property_id, start_date, end_date, reason, created_by, created_at`

// Create inserts a block and populates the generated ID.
func (r *BlockRepo) Create(ctx context.Context, b *model.AvailabilityBlock) error {
	const q = `INSERT INTO availability_blocks (property_id, start_date, end_date, reason, created_by)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.PropertyID,
		b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"),
		b.Reason, b.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// Delete removes a block if it lies within the caller's scope.
func (r *BlockRepo) Delete(ctx context.Context, id uint64, scope access.Scope) error {
	var propertyID uint64
	err := r.db.QueryRowContext(ctx, `SELECT property_id FROM availability_blocks WHERE id = ?`, id).
		Scan(&propertyID)
	if err != nil {
		return err
	}
	if !scope.Allows(propertyID) {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM availability_blocks WHERE id = ?`, id)
	return err
}

// ListForProperty returns all blocks on a property, earliest first.
func (r *BlockRepo) ListForProperty(ctx context.Context, propertyID uint64) ([]model.AvailabilityBlock, error) {
	const q = `SELECT ` + blockColumns + ` FROM availability_blocks
	           WHERE property_id = ? ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AvailabilityBlock{}
	for rows.Next() {
		var b model.AvailabilityBlock
		var reason sql.NullString
		var createdBy sql.NullInt64
		if err := rows.Scan(&b.ID, &b.PropertyID, &b.StartDate, &b.EndDate,
			&reason, &createdBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		if reason.Valid {
			b.Reason = &reason.String
		}
		if createdBy.Valid {
			v := uint64(createdBy.Int64)
			b.CreatedBy = &v
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
