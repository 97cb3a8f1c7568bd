package codes

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

var reservationShape = regexp.MustCompile(`^HH-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestReservationShape(t *testing.T) {
	code := Reservation()
	if !reservationShape.MatchString(code) {
		t.Fatalf("Reservation() = %q, want HH-<base36>-<4 chars>", code)
	}
}

func TestReservationCollisionRate(t *testing.T) {
	// Repeated calls within the same millisecond share the timestamp
	// component, so distinctness rides on the 4-character suffix.  A low
	// collision count over many trials is all the generator promises;
	// hard uniqueness belongs to the DB unique index.
	const trials = 2000
	seen := make(map[string]bool, trials)
	collisions := 0
	for range trials {
		c := Reservation()
		if seen[c] {
			collisions++
		}
		seen[c] = true
	}
	if collisions > 5 {
		t.Fatalf("%d collisions in %d trials", collisions, trials)
	}
}

func TestProperty(t *testing.T) {
	code := Property("Lonavala", "Casa Del Sol")
	if !strings.HasPrefix(code, "HH-LONCDS-") {
		t.Fatalf("Property() = %q, want HH-LONCDS-XX", code)
	}
	if !regexp.MustCompile(`^HH-LONCDS-[0-9A-Z]{2}$`).MatchString(code) {
		t.Fatalf("Property() = %q, suffix shape wrong", code)
	}
}

func TestPropertyShortCity(t *testing.T) {
	code := Property("Goa", "Villa")
	if !strings.HasPrefix(code, "HH-GOAV-") {
		t.Fatalf("Property() = %q, want HH-GOAV-XX", code)
	}
}

func TestPropertyMultibyteCity(t *testing.T) {
	// Devanagari city name: truncation must land on rune boundaries, never
	// mid-character.
	code := Property("वाराणसी", "River House")
	if !utf8.ValidString(code) {
		t.Fatalf("Property() = %q, invalid UTF-8", code)
	}
	if !strings.HasPrefix(code, "HH-"+string([]rune("वाराणसी")[:3])+"RH-") {
		t.Fatalf("Property() = %q, city part not the first three runes", code)
	}
}

func TestPropertyDistinct(t *testing.T) {
	a := Property("Mumbai", "Sea View")
	b := Property("Mumbai", "Sea View")
	// Two-character suffix: equal codes are possible but unlikely enough
	// that a larger sample should differ somewhere.
	if a == b {
		for range 50 {
			if Property("Mumbai", "Sea View") != a {
				return
			}
		}
		t.Fatal("50 property codes identical; suffix not random")
	}
}
