package model

import "testing"

func TestMealTypeLabel(t *testing.T) {
	cases := map[string]string{
		MealBreakfast: "Breakfast",
		MealBBQ:       "BBQ",
		MealALaCarte:  "À la Carte",
		"hightea":     "hightea",
	}
	for in, want := range cases {
		if got := MealTypeLabel(in); got != want {
			t.Errorf("MealTypeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAvailableDaysLabel(t *testing.T) {
	cases := map[string]string{
		"Mon,Tue,Wed,Thu,Fri,Sat,Sun": "All Days",
		"Mon,Tue,Wed,Thu,Fri":         "Weekdays",
		"Sat,Sun":                     "Weekends",
		"Mon,Wed":                     "Monday, Wednesday",
		"Fri":                         "Friday",
	}
	for in, want := range cases {
		if got := AvailableDaysLabel(in); got != want {
			t.Errorf("AvailableDaysLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusTentative, StatusConfirmed, true},
		{StatusTentative, StatusCancelled, true},
		{StatusTentative, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusTentative, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}
	for _, c := range cases {
		r := Reservation{Status: c.from}
		if got := r.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestBlocksAvailability(t *testing.T) {
	for status, want := range map[string]bool{
		StatusTentative: true,
		StatusConfirmed: true,
		StatusCompleted: true,
		StatusCancelled: false,
	} {
		r := Reservation{Status: status}
		if got := r.BlocksAvailability(); got != want {
			t.Errorf("BlocksAvailability(%s) = %v, want %v", status, got, want)
		}
	}
}
