// Package analytics reduces windows of precomputed daily metrics into the
// summary figures shown on dashboards.  Summarize is pure and
// order-independent; "no rows in range" is an expected outcome and yields
// an all-zero summary rather than an error.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

// Window is an inclusive reporting date range.
type Window struct {
	From time.Time
	To   time.Time
}

// Days returns the number of calendar days the window covers, inclusive
// of both endpoints.  A window whose end precedes its start covers zero
// days.
func (w Window) Days() int {
	from := time.Date(w.From.Year(), w.From.Month(), w.From.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(w.To.Year(), w.To.Month(), w.To.Day(), 0, 0, 0, 0, time.UTC)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// LastDays returns a window covering the n days ending at (and
// including) the given day.
func LastDays(end time.Time, n int) Window {
	return Window{From: end.AddDate(0, 0, -(n - 1)), To: end}
}

// Summary holds the aggregated dashboard figures for a window.
//
// ADR (average daily rate) is revenue per room-night sold; RevPAR is
// revenue per available day in the window.  Both degrade to zero when
// their divisor is zero.
type Summary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalReservations int             `json:"total_reservations"`
	TotalRoomNights   int             `json:"total_room_nights"`
	AvgOccupancy      decimal.Decimal `json:"avg_occupancy"`
	ADR               decimal.Decimal `json:"adr"`
	RevPAR            decimal.Decimal `json:"revpar"`
}

// Summarize folds the given daily records into a Summary.  Record order
// is irrelevant, the input is never mutated, and an empty slice yields
// the zero Summary.  AvgOccupancy is the plain arithmetic mean of the
// occupancy column over the records present, not weighted by room-nights.
func Summarize(records []model.AnalyticsDaily, window Window) Summary {
	s := Summary{
		TotalRevenue: decimal.Zero,
		AvgOccupancy: decimal.Zero,
		ADR:          decimal.Zero,
		RevPAR:       decimal.Zero,
	}
	occupancySum := decimal.Zero
	for i := range records {
		r := &records[i]
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)
		s.TotalReservations += r.Reservations
		s.TotalRoomNights += r.RoomNights
		occupancySum = occupancySum.Add(r.Occupancy)
	}
	if n := len(records); n > 0 {
		s.AvgOccupancy = occupancySum.Div(decimal.NewFromInt(int64(n)))
	}
	if s.TotalRoomNights > 0 {
		s.ADR = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalRoomNights)))
	}
	if days := window.Days(); days > 0 {
		s.RevPAR = s.TotalRevenue.Div(decimal.NewFromInt(int64(days)))
	}
	return s
}

// OccupancyRate derives an occupancy percentage from room-nights sold
// over total available room-days, zero when the denominator is zero.
func OccupancyRate(roomNights, totalDays int) decimal.Decimal {
	if totalDays == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(roomNights)).
		Div(decimal.NewFromInt(int64(totalDays))).
		Mul(decimal.NewFromInt(100))
}
