// Package dates provides calendar-date helpers used by the booking and
// analytics layers.  All functions operate on whole days; reservation
// intervals are half-open [check_in, check_out), so the checkout day is
// never counted as an occupied night.
package dates

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"
	"time"
)

// Layout is the canonical wire format for calendar dates.
const Layout = "2006-01-02"

// ErrInvalidRange is returned when a date interval's end is not strictly
// after its start.  A positive number of nights is always required.
var ErrInvalidRange = errors.New("dates: check-out must be after check-in")

// ErrInvalidFormat is returned when a date string cannot be parsed under
// any recognized format.
var ErrInvalidFormat = errors.New("dates: unrecognized date format")

// Parse parses a strict YYYY-MM-DD date string into a UTC midnight time.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return t, nil
}

// dayOf truncates a time to UTC midnight of its calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RoomNights returns the number of nights between check-in and check-out,
// i.e. the calendar day difference.  The result is always >= 1; a zero or
// negative interval yields ErrInvalidRange.
func RoomNights(checkIn, checkOut time.Time) (int, error) {
	in := dayOf(checkIn)
	out := dayOf(checkOut)
	if !out.After(in) {
		return 0, ErrInvalidRange
	}
	return int(out.Sub(in).Hours() / 24), nil
}

// Overlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  Touching endpoints do not overlap, so a
// checkout day may coincide with another booking's check-in day
// (back-to-back turnover).
func Overlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Sequence returns an iterator over the calendar days from start to end
// inclusive, one per day in ascending order.  The iterator is restartable:
// ranging over it again replays the same days.  An end before start yields
// an empty sequence.
func Sequence(start, end time.Time) iter.Seq[time.Time] {
	first := dayOf(start)
	last := dayOf(end)
	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Patterns accepted by ParseFlexible, tried in order.  These mirror the
// date shapes seen in channel-manager CSV exports.
var (
	reISO     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reSlashMD = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	reDashMD  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

// ParseFlexible normalizes a date string from one of the accepted CSV
// formats (YYYY-MM-DD, MM/DD/YYYY, M/D/YYYY, MM-DD-YYYY) into a UTC
// midnight time.  Unrecognized input yields ErrInvalidFormat.
func ParseFlexible(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case reISO.MatchString(s):
		return Parse(s)
	case reSlashMD.MatchString(s):
		return parseMDY(s, "/")
	case reDashMD.MatchString(s):
		return parseMDY(s, "-")
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

func parseMDY(s, sep string) (time.Time, error) {
	parts := strings.Split(s, sep)
	iso := parts[2] + "-" + pad2(parts[0]) + "-" + pad2(parts[1])
	t, err := time.ParseInLocation(Layout, iso, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return t, nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
