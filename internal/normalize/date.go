package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// Date layouts, grouped by how much they say about field order.
var (
	// isoLayouts put the year first and are never ambiguous.
	isoLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02", "20060102",
		"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04:05",
		time.RFC3339, "2006-01-02T15:04:05.999999999",
		"2006-01", "2006",
	}
	dayFirstLayouts = []string{
		"2/1/2006", "2-1-2006", "2.1.2006",
		"2/1/2006 15:04:05", "2/1/2006 15:04",
	}
	monthFirstLayouts = []string{
		"1/2/2006", "1-2-2006", "1.2.2006",
		"1/2/2006 15:04:05", "1/2/2006 15:04",
	}
	textLayouts = []string{
		"2 Jan 2006", "2 January 2006", "2-Jan-2006",
		"Jan 2, 2006", "January 2, 2006", "Jan 2 2006", "January 2 2006",
		"Mon, 2 Jan 2006", "Monday, January 2, 2006",
	}
	dayFirstShortLayouts   = []string{"2/1/06", "2-1-06", "2.1.06"}
	monthFirstShortLayouts = []string{"1/2/06", "1-2-06", "1.2.06"}
)

// AgeRange bounds an age in years, both ends inclusive.
type AgeRange struct {
	Min int
	Max int
}

// DefaultAgeRange accepts ages from 0 to 120 years.
var DefaultAgeRange = AgeRange{Min: 0, Max: 120}

// ParseDate converts a cell to a date. Strings are tried year-first, then
// in the preferred day/month order, then in the other order, so
// "03/15/1985" still parses when dayFirst is set. Time of day is dropped.
// Anything unparsable is missing.
func ParseDate(v any, dayFirst bool) pgtype.Date {
	switch x := v.(type) {
	case time.Time:
		return dateOf(x)
	case pgtype.Date:
		if !x.Valid {
			return pgtype.Date{Valid: false}
		}
		return dateOf(x.Time)
	case string:
		return parseDateString(strings.TrimSpace(x), dayFirst)
	default:
		return pgtype.Date{Valid: false}
	}
}

func parseDateString(s string, dayFirst bool) pgtype.Date {
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	long, short := dayFirstLayouts, dayFirstShortLayouts
	otherLong, otherShort := monthFirstLayouts, monthFirstShortLayouts
	if !dayFirst {
		long, otherLong = otherLong, long
		short, otherShort = otherShort, short
	}

	for _, layouts := range [][]string{isoLayouts, long, otherLong, textLayouts} {
		if t, ok := tryLayouts(s, layouts); ok {
			return dateOf(t)
		}
	}

	// Try 2-digit year layouts with pivot year adjustment
	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layouts := range [][]string{short, otherShort} {
		if t, ok := tryLayouts(s, layouts); ok {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return dateOf(t)
		}
	}

	return pgtype.Date{Valid: false}
}

func tryLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateOf keeps the calendar date of t as midnight UTC.
func dateOf(t time.Time) pgtype.Date {
	return pgtype.Date{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

// wallClock reads now's wall clock as UTC so it compares with dates
// parsed without a zone.
func wallClock(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
}

// IsFutureDate reports whether d is after now. Missing dates are not.
func IsFutureDate(d pgtype.Date, now time.Time) bool {
	return d.Valid && d.Time.After(wallClock(now))
}

// IsValidBirthdate reports whether d is a plausible birthdate at now: not
// in the future, and an age within r. Age is whole elapsed days divided
// by 365.25. Missing dates are invalid.
func IsValidBirthdate(d pgtype.Date, now time.Time, r AgeRange) bool {
	if !d.Valid {
		return false
	}
	wall := wallClock(now)
	if d.Time.After(wall) {
		return false
	}
	days := math.Floor(wall.Sub(d.Time).Hours() / 24)
	age := days / 365.25
	return age >= float64(r.Min) && age <= float64(r.Max)
}
