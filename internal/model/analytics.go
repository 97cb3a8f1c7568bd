package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsDaily is one row of the precomputed `analytics_daily` table:
// per-day, per-property metrics produced by an external batch job and
// read-only from this application's perspective.  NULL metric columns are
// normalized to zero at scan time, so consumers can sum and average
// without nil checks.
type AnalyticsDaily struct {
	Date         time.Time       // analytics_daily.dt
	PropertyID   uint64          // analytics_daily.property_id
	Reservations int             // analytics_daily.reservations
	RoomNights   int             // analytics_daily.room_nights
	Revenue      decimal.Decimal // analytics_daily.revenue
	ADR          decimal.Decimal // analytics_daily.adr
	Occupancy    decimal.Decimal // analytics_daily.occupancy (percent)
	RevPAR       decimal.Decimal // analytics_daily.revpar
}
