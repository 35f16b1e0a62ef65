package normalize

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		dayFirst bool
		want     pgtype.Date
	}{
		// ISO layouts ignore the day/month preference
		{name: "iso", input: "1985-03-15", dayFirst: true, want: date(1985, 3, 15)},
		{name: "iso slashes", input: "1985/03/15", dayFirst: true, want: date(1985, 3, 15)},
		{name: "iso with time", input: "1985-03-15 10:30:00", dayFirst: true, want: date(1985, 3, 15)},
		{name: "iso T", input: "1985-03-15T10:30:00", dayFirst: false, want: date(1985, 3, 15)},
		{name: "compact", input: "19850315", dayFirst: true, want: date(1985, 3, 15)},
		{name: "padded", input: "  1985-03-15  ", dayFirst: true, want: date(1985, 3, 15)},

		// Day first
		{name: "day first slashes", input: "15/03/1985", dayFirst: true, want: date(1985, 3, 15)},
		{name: "day first ambiguous", input: "01/02/1990", dayFirst: true, want: date(1990, 2, 1)},
		{name: "day first dashes", input: "1-2-1990", dayFirst: true, want: date(1990, 2, 1)},
		{name: "day first dots", input: "01.02.1990", dayFirst: true, want: date(1990, 2, 1)},
		{name: "day first falls back to month first", input: "03/15/1985", dayFirst: true, want: date(1985, 3, 15)},

		// Month first
		{name: "month first ambiguous", input: "01/02/1990", dayFirst: false, want: date(1990, 1, 2)},
		{name: "month first falls back to day first", input: "15/03/1985", dayFirst: false, want: date(1985, 3, 15)},

		// Textual
		{name: "text day month year", input: "15 March 1985", dayFirst: true, want: date(1985, 3, 15)},
		{name: "text short month", input: "Mar 15, 1985", dayFirst: true, want: date(1985, 3, 15)},

		// Two-digit years
		{name: "two digit year past century", input: "15/03/85", dayFirst: true, want: date(1985, 3, 15)},

		// Already typed
		{name: "time value", input: time.Date(2000, 6, 1, 13, 45, 0, 0, time.UTC), dayFirst: true, want: date(2000, 6, 1)},
		{name: "pgtype date", input: date(2000, 6, 1), dayFirst: true, want: date(2000, 6, 1)},

		// Missing
		{name: "invalid day", input: "32/01/2000", dayFirst: true, want: pgtype.Date{}},
		{name: "invalid calendar date", input: "2001-02-29", dayFirst: true, want: pgtype.Date{}},
		{name: "garbage", input: "not a date", dayFirst: true, want: pgtype.Date{}},
		{name: "empty", input: "", dayFirst: true, want: pgtype.Date{}},
		{name: "nil", input: nil, dayFirst: true, want: pgtype.Date{}},
		{name: "number", input: 19850315.0, dayFirst: true, want: pgtype.Date{}},
		{name: "invalid pgtype date", input: pgtype.Date{}, dayFirst: true, want: pgtype.Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input, tt.dayFirst)
			assert.Equal(t, tt.want.Valid, got.Valid)
			if tt.want.Valid {
				assert.True(t, tt.want.Time.Equal(got.Time), "ParseDate(%v) = %v, want %v", tt.input, got.Time, tt.want.Time)
			}
		})
	}
}

func TestParseDate_TwoDigitYearPivot(t *testing.T) {
	// A two-digit year far in the future belongs to the previous century.
	next := (time.Now().Year() + TwoDigitYearPivot + 1) % 100
	in := time.Date(2000+next, 1, 2, 0, 0, 0, 0, time.UTC).Format("02/01/06")

	got := ParseDate(in, true)
	require.True(t, got.Valid)
	assert.LessOrEqual(t, got.Time.Year(), time.Now().Year()+TwoDigitYearPivot)
}

func TestIsValidBirthdate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date pgtype.Date
		want bool
	}{
		{name: "adult", date: date(1985, 3, 15), want: true},
		{name: "born today", date: date(2024, 6, 15), want: true},
		{name: "newborn", date: date(2024, 1, 1), want: true},
		{name: "tomorrow", date: date(2024, 6, 16), want: false},
		{name: "far future", date: date(2090, 1, 1), want: false},
		{name: "exactly 120 years", date: date(1904, 6, 16), want: true},
		{name: "older than 120", date: date(1900, 1, 1), want: false},
		{name: "medieval", date: date(1200, 1, 1), want: false},
		{name: "missing", date: pgtype.Date{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidBirthdate(tt.date, now, DefaultAgeRange); got != tt.want {
				t.Errorf("IsValidBirthdate(%v) = %v, want %v", tt.date.Time, got, tt.want)
			}
		})
	}
}

func TestIsValidBirthdate_CustomRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	adults := AgeRange{Min: 18, Max: 65}

	assert.False(t, IsValidBirthdate(date(2010, 1, 1), now, adults), "minor")
	assert.True(t, IsValidBirthdate(date(1990, 1, 1), now, adults), "adult")
	assert.False(t, IsValidBirthdate(date(1950, 1, 1), now, adults), "retired")
}

func TestIsFutureDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsFutureDate(date(2024, 6, 16), now))
	assert.False(t, IsFutureDate(date(2024, 6, 15), now))
	assert.False(t, IsFutureDate(date(2000, 1, 1), now))
	assert.False(t, IsFutureDate(pgtype.Date{}, now))
}
