package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/Hostizzy/hostizzy-pms/internal/dates"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
)

func day(s string) time.Time {
	t, err := dates.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func reservation(id uint64, status, in, out string) model.Reservation {
	return model.Reservation{
		ID:       id,
		Code:     "HH-TEST",
		Status:   status,
		CheckIn:  day(in),
		CheckOut: day(out),
	}
}

func TestCheckOpenCalendar(t *testing.T) {
	d, err := Check(day("2024-06-01"), day("2024-06-05"), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Bookable || d.Conflict != nil {
		t.Fatalf("empty calendar should be bookable, got %+v", d)
	}
}

func TestCheckConfirmedConflict(t *testing.T) {
	res := []model.Reservation{reservation(42, model.StatusConfirmed, "2024-06-01", "2024-06-05")}

	// identical interval conflicts
	d, err := Check(day("2024-06-01"), day("2024-06-05"), res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Bookable {
		t.Fatal("identical interval should conflict")
	}
	if d.Conflict == nil || d.Conflict.Kind != ConflictReservation || d.Conflict.ID != 42 {
		t.Fatalf("conflict diagnostics wrong: %+v", d.Conflict)
	}

	// same interval becomes bookable once the reservation is cancelled
	res[0].Status = model.StatusCancelled
	d, err = Check(day("2024-06-01"), day("2024-06-05"), res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Bookable {
		t.Fatal("cancelled reservation must not block availability")
	}
}

func TestCheckBackToBack(t *testing.T) {
	res := []model.Reservation{reservation(1, model.StatusConfirmed, "2024-06-01", "2024-06-05")}
	d, err := Check(day("2024-06-05"), day("2024-06-08"), res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Bookable {
		t.Fatal("check-in on another booking's checkout day must be allowed")
	}
}

func TestCheckTentativeAndCompletedBlock(t *testing.T) {
	for _, status := range []string{model.StatusTentative, model.StatusCompleted} {
		res := []model.Reservation{reservation(7, status, "2024-06-01", "2024-06-05")}
		d, err := Check(day("2024-06-03"), day("2024-06-06"), res, nil)
		if err != nil {
			t.Fatal(err)
		}
		if d.Bookable {
			t.Errorf("%s reservation should block availability", status)
		}
	}
}

func TestCheckBlockConflict(t *testing.T) {
	blocks := []model.AvailabilityBlock{{
		ID:         9,
		StartDate:  day("2024-06-10"),
		EndDate:    day("2024-06-12"),
	}}
	d, err := Check(day("2024-06-11"), day("2024-06-13"), nil, blocks)
	if err != nil {
		t.Fatal(err)
	}
	if d.Bookable {
		t.Fatal("availability block should conflict")
	}
	if d.Conflict.Kind != ConflictBlock || d.Conflict.ID != 9 {
		t.Fatalf("conflict diagnostics wrong: %+v", d.Conflict)
	}
}

func TestCheckFirstConflictReported(t *testing.T) {
	res := []model.Reservation{
		reservation(1, model.StatusConfirmed, "2024-06-01", "2024-06-04"),
		reservation(2, model.StatusConfirmed, "2024-06-04", "2024-06-08"),
	}
	d, err := Check(day("2024-06-02"), day("2024-06-06"), res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Conflict == nil || d.Conflict.ID != 1 {
		t.Fatalf("want first conflicting reservation (id 1), got %+v", d.Conflict)
	}
}

func TestCheckZeroNightRejected(t *testing.T) {
	_, err := Check(day("2024-06-01"), day("2024-06-01"), nil, nil)
	if !errors.Is(err, dates.ErrInvalidRange) {
		t.Fatalf("zero-night candidate: got %v, want ErrInvalidRange", err)
	}
}
