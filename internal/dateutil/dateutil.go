// Package dateutil contains the pure date helpers used by the transform
// stage: multi-format parsing with a fixed fallback order, whole-year age
// calculation, and elapsed-day calculation.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Layouts attempted by ParseDate, in priority order. The first layout that
// parses wins, so e.g. "19991231" is always read as YYYYMMDD even though it
// would also satisfy MMDDYYYY.
var Layouts = []string{
	"20060102",            // YYYYMMDD
	"01022006",            // MMDDYYYY
	"2006-01-02 15:04:05", // YYYY-MM-DD HH:MM:SS
}

// StorageLayout is the rendering used for date columns in the store.
const StorageLayout = "2006-01-02"

// ParseDate parses s against Layouts in order and returns the first match.
// The error carries the offending value; callers treat a failure as a
// droppable row, never as a batch abort.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("parse date: empty value")
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date: unrecognized value %q", v)
}

// AgeInYears returns the whole years between dob and ref, decremented by one
// when ref's (month, day) falls strictly before dob's (month, day). The exact
// birthday counts the new year.
func AgeInYears(dob, ref time.Time) int {
	years := ref.Year() - dob.Year()
	if beforeBirthday(ref, dob) {
		years--
	}
	return years
}

// beforeBirthday reports whether ref's (month, day) is strictly earlier in
// the calendar than dob's (month, day).
func beforeBirthday(ref, dob time.Time) bool {
	if ref.Month() != dob.Month() {
		return ref.Month() < dob.Month()
	}
	return ref.Day() < dob.Day()
}

// DaysSince returns the integer day difference ref minus t, computed on
// calendar days so the time-of-day of the reference timestamp cannot skew the
// count. A future t yields a negative count; that is deliberate and not
// rejected.
func DaysSince(t, ref time.Time) int {
	a := midnightUTC(t)
	b := midnightUTC(ref)
	return int(b.Sub(a).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
