package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func record(dt string, reservations, nights int, revenue, occupancy string) model.AnalyticsDaily {
	return model.AnalyticsDaily{
		Date:         day(dt),
		PropertyID:   1,
		Reservations: reservations,
		RoomNights:   nights,
		Revenue:      dec(revenue),
		Occupancy:    dec(occupancy),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, Window{From: day("2024-05-01"), To: day("2024-05-31")})
	if !s.TotalRevenue.IsZero() || s.TotalReservations != 0 || s.TotalRoomNights != 0 {
		t.Fatalf("empty input should sum to zero: %+v", s)
	}
	if !s.AvgOccupancy.IsZero() || !s.ADR.IsZero() || !s.RevPAR.IsZero() {
		t.Fatalf("empty input should not divide: %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	records := []model.AnalyticsDaily{
		record("2024-05-01", 2, 3, "12000", "60"),
		record("2024-05-02", 1, 2, "8000", "40"),
		record("2024-05-03", 0, 0, "0", "0"),
		record("2024-05-04", 3, 5, "20000", "80"),
	}
	w := Window{From: day("2024-05-01"), To: day("2024-05-10")} // 10 days

	s := Summarize(records, w)
	if !s.TotalRevenue.Equal(dec("40000")) {
		t.Errorf("TotalRevenue = %s, want 40000", s.TotalRevenue)
	}
	if s.TotalReservations != 6 {
		t.Errorf("TotalReservations = %d, want 6", s.TotalReservations)
	}
	if s.TotalRoomNights != 10 {
		t.Errorf("TotalRoomNights = %d, want 10", s.TotalRoomNights)
	}
	if !s.AvgOccupancy.Equal(dec("45")) { // (60+40+0+80)/4
		t.Errorf("AvgOccupancy = %s, want 45", s.AvgOccupancy)
	}
	if !s.ADR.Equal(dec("4000")) { // 40000 / 10 nights
		t.Errorf("ADR = %s, want 4000", s.ADR)
	}
	if !s.RevPAR.Equal(dec("4000")) { // 40000 / 10 days
		t.Errorf("RevPAR = %s, want 4000", s.RevPAR)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	records := []model.AnalyticsDaily{
		record("2024-05-01", 2, 3, "1234.56", "61.5"),
		record("2024-05-02", 1, 2, "789.01", "42.25"),
		record("2024-05-03", 4, 7, "4321.99", "88"),
	}
	reversed := []model.AnalyticsDaily{records[2], records[1], records[0]}
	w := Window{From: day("2024-05-01"), To: day("2024-05-03")}

	a := Summarize(records, w)
	b := Summarize(reversed, w)
	if !a.TotalRevenue.Equal(b.TotalRevenue) || !a.AvgOccupancy.Equal(b.AvgOccupancy) ||
		!a.ADR.Equal(b.ADR) || !a.RevPAR.Equal(b.RevPAR) ||
		a.TotalReservations != b.TotalReservations || a.TotalRoomNights != b.TotalRoomNights {
		t.Fatalf("summary depends on record order:\n%+v\n%+v", a, b)
	}
}

func TestSummarizeZeroRoomNights(t *testing.T) {
	records := []model.AnalyticsDaily{record("2024-05-01", 0, 0, "500", "0")}
	s := Summarize(records, Window{From: day("2024-05-01"), To: day("2024-05-01")})
	if !s.ADR.IsZero() {
		t.Errorf("ADR with zero room-nights = %s, want 0", s.ADR)
	}
	if !s.RevPAR.Equal(dec("500")) {
		t.Errorf("RevPAR = %s, want 500", s.RevPAR)
	}
}

func TestWindowDays(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2024-05-01", "2024-05-01", 1},
		{"2024-05-01", "2024-05-31", 31},
		{"2024-05-10", "2024-05-01", 0},
	}
	for _, c := range cases {
		w := Window{From: day(c.from), To: day(c.to)}
		if got := w.Days(); got != c.want {
			t.Errorf("Window{%s, %s}.Days() = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}

func TestLastDays(t *testing.T) {
	w := LastDays(day("2024-05-30"), 30)
	if w.Days() != 30 {
		t.Fatalf("LastDays(30).Days() = %d, want 30", w.Days())
	}
	if !w.From.Equal(day("2024-05-01")) {
		t.Fatalf("LastDays from = %s, want 2024-05-01", w.From)
	}
}

func TestOccupancyRate(t *testing.T) {
	if got := OccupancyRate(15, 30); !got.Equal(dec("50")) {
		t.Errorf("OccupancyRate(15, 30) = %s, want 50", got)
	}
	if got := OccupancyRate(5, 0); !got.IsZero() {
		t.Errorf("OccupancyRate(5, 0) = %s, want 0", got)
	}
}
