// Package codes generates the short human-readable identifiers printed on
// reservations and properties.  The codes are distinguishable, not unique:
// the random suffixes keep collisions rare, and the database's unique
// indexes on the code columns are the actual uniqueness guarantee.
package codes

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	prefix   = "HH"
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Reservation returns a reservation code of the form HH-<TS>-<RAND> where
// TS is the current Unix millisecond timestamp in base 36 and RAND is a
// four-character random suffix.
func Reservation() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return prefix + "-" + ts + "-" + randomSuffix(4)
}

// Property derives a code from the property's city and name: the first
// three letters of the city, the initial of every word in the name, and a
// two-character random suffix, e.g. Property("Lonavala", "Casa Del Sol")
// -> "HH-LONCDS-7Q".
func Property(city, name string) string {
	// Truncate by rune, not byte: city names are not always ASCII.
	cityRunes := []rune(strings.ToUpper(city))
	if len(cityRunes) > 3 {
		cityRunes = cityRunes[:3]
	}
	cityCode := string(cityRunes)
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			initials.WriteRune(unicode.ToUpper(r))
		}
	}
	return prefix + "-" + cityCode + initials.String() + "-" + randomSuffix(2)
}
