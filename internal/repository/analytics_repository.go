package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
	"github.com/Hostizzy/hostizzy-pms/internal/analytics"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// AnalyticsRepo reads the precomputed analytics_daily table.  Rows are
// produced by an external batch job; this repository only ever selects.
// NULL metric columns are normalized to zero here so the aggregator
// receives a validated non-null collection.
type AnalyticsRepo struct {
	db *sql.DB
}

// NewAnalyticsRepo returns a new AnalyticsRepo bound to the given database.
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// Window returns the daily records inside the inclusive window for the
// properties the scope allows.  An optional propertyID narrows further;
// a property outside the scope yields ErrForbidden.
func (r *AnalyticsRepo) Window(ctx context.Context, w analytics.Window, scope access.Scope, propertyID uint64) ([]model.AnalyticsDaily, error) {
	if propertyID != 0 && !scope.Allows(propertyID) {
		return nil, ErrForbidden
	}
	clause, scopeArgs, ok := scopeClause("property_id", scope)
	if !ok {
		return []model.AnalyticsDaily{}, nil
	}
	q := `SELECT dt, property_id, reservations, room_nights, revenue, adr, occupancy, revpar
	      FROM analytics_daily WHERE dt >= ? AND dt <= ?` + clause
	args := append([]any{w.From.Format("2006-01-02"), w.To.Format("2006-01-02")}, scopeArgs...)
	if propertyID != 0 {
		q += ` AND property_id = ?`
		args = append(args, propertyID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AnalyticsDaily{}
	for rows.Next() {
		var rec model.AnalyticsDaily
		var reservations, roomNights sql.NullInt64
		var revenue, adr, occupancy, revpar decimal.NullDecimal
		if err := rows.Scan(&rec.Date, &rec.PropertyID, &reservations, &roomNights,
			&revenue, &adr, &occupancy, &revpar); err != nil {
			return nil, err
		}
		rec.Reservations = int(reservations.Int64)
		rec.RoomNights = int(roomNights.Int64)
		rec.Revenue = nzd(revenue)
		rec.ADR = nzd(adr)
		rec.Occupancy = nzd(occupancy)
		rec.RevPAR = nzd(revpar)
		out = append(out, rec)
	}
	return out, rows.Err()
}
