package dates

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRoomNights(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2024-01-01", "2024-01-02", 1},
		{"2024-01-01", "2024-01-05", 4},
		{"2024-02-27", "2024-03-02", 4}, // leap year boundary
		{"2024-12-30", "2025-01-02", 3},
	}
	for _, c := range cases {
		got, err := RoomNights(day(c.in), day(c.out))
		if err != nil {
			t.Fatalf("RoomNights(%s, %s): %v", c.in, c.out, err)
		}
		if got != c.want {
			t.Errorf("RoomNights(%s, %s) = %d, want %d", c.in, c.out, got, c.want)
		}
		if got < 1 {
			t.Errorf("RoomNights(%s, %s) = %d, want >= 1", c.in, c.out, got)
		}
	}
}

func TestRoomNightsInvalidRange(t *testing.T) {
	for _, c := range [][2]string{
		{"2024-01-05", "2024-01-05"},
		{"2024-01-05", "2024-01-01"},
	} {
		if _, err := RoomNights(day(c[0]), day(c[1])); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("RoomNights(%s, %s): got %v, want ErrInvalidRange", c[0], c[1], err)
		}
	}
}

func TestOverlap(t *testing.T) {
	cases := []struct {
		a1, a2, b1, b2 string
		want           bool
	}{
		// back-to-back: checkout equals next check-in, never a conflict
		{"2024-01-01", "2024-01-05", "2024-01-05", "2024-01-10", false},
		{"2024-01-01", "2024-01-05", "2024-01-04", "2024-01-10", true},
		{"2024-01-01", "2024-01-10", "2024-01-03", "2024-01-04", true},
		{"2024-01-01", "2024-01-05", "2024-01-06", "2024-01-08", false},
		{"2024-01-03", "2024-01-07", "2024-01-03", "2024-01-07", true},
	}
	for _, c := range cases {
		got := Overlap(day(c.a1), day(c.a2), day(c.b1), day(c.b2))
		if got != c.want {
			t.Errorf("Overlap(%s,%s,%s,%s) = %v, want %v", c.a1, c.a2, c.b1, c.b2, got, c.want)
		}
		// symmetric under swapping the two intervals
		if sym := Overlap(day(c.b1), day(c.b2), day(c.a1), day(c.a2)); sym != got {
			t.Errorf("Overlap not symmetric for (%s,%s) vs (%s,%s)", c.a1, c.a2, c.b1, c.b2)
		}
	}
}

func TestSequence(t *testing.T) {
	var got []string
	for d := range Sequence(day("2024-03-01"), day("2024-03-03")) {
		got = append(got, d.Format(Layout))
	}
	want := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	if len(got) != len(want) {
		t.Fatalf("Sequence yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sequence yielded %v, want %v", got, want)
		}
	}
}

func TestSequenceRestartable(t *testing.T) {
	seq := Sequence(day("2024-03-01"), day("2024-03-02"))
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 2 || second != 2 {
		t.Fatalf("restarted sequence yielded %d then %d days, want 2 and 2", first, second)
	}
}

func TestSequenceEmpty(t *testing.T) {
	n := 0
	for range Sequence(day("2024-03-05"), day("2024-03-01")) {
		n++
	}
	if n != 0 {
		t.Fatalf("reversed range yielded %d days, want 0", n)
	}
}

func TestParseFlexible(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-05", "2024-03-05"},
		{"03/05/2024", "2024-03-05"},
		{"3/5/2024", "2024-03-05"},
		{"03-05-2024", "2024-03-05"},
		{" 2024-03-05 ", "2024-03-05"},
	}
	for _, c := range cases {
		got, err := ParseFlexible(c.in)
		if err != nil {
			t.Fatalf("ParseFlexible(%q): %v", c.in, err)
		}
		if got.Format(Layout) != c.want {
			t.Errorf("ParseFlexible(%q) = %s, want %s", c.in, got.Format(Layout), c.want)
		}
	}
}

func TestParseFlexibleInvalid(t *testing.T) {
	for _, in := range []string{"", "5 March 2024", "2024/03/05", "13/40/2024"} {
		if _, err := ParseFlexible(in); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ParseFlexible(%q): got %v, want ErrInvalidFormat", in, err)
		}
	}
}
