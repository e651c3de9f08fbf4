package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LocalDate is a pure calendar date built only from explicit year/month/day
// components. It exists so that "YYYY-MM-DD" strings coming from clients are
// never fed through a raw datetime parse, which would apply UTC and shift
// the date by a day in western timezones. All calendar arithmetic the flow
// needs (weekday, next-day, comparison) happens on this type.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseLocalDate parses a strict "YYYY-MM-DD" string into a LocalDate.
// The components must form a real calendar date: "2023-02-30" is rejected.
func ParseLocalDate(s string) (LocalDate, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return LocalDate{}, fmt.Errorf("date %q is not in YYYY-MM-DD form", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return LocalDate{}, fmt.Errorf("malformed year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return LocalDate{}, fmt.Errorf("malformed month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return LocalDate{}, fmt.Errorf("malformed day in %q", s)
	}
	if month < 1 || month > 12 {
		return LocalDate{}, fmt.Errorf("month out of range in %q", s)
	}

	d := LocalDate{Year: year, Month: time.Month(month), Day: day}
	// time.Date normalizes overflow (Feb 30 becomes Mar 2); a round-trip
	// mismatch therefore means the components were not a real date.
	norm := d.at()
	if norm.Year() != year || norm.Month() != time.Month(month) || norm.Day() != day {
		return LocalDate{}, fmt.Errorf("%q is not a valid calendar date", s)
	}
	return d, nil
}

// DateOf extracts the calendar date of an instant in its own location.
func DateOf(t time.Time) LocalDate {
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// at anchors the date at midnight UTC purely for component arithmetic; the
// location is irrelevant because only Y/M/D ever leave this package.
func (d LocalDate) at() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of week for the date.
func (d LocalDate) Weekday() time.Weekday {
	return d.at().Weekday()
}

// AddDays returns the date n calendar days later.
func (d LocalDate) AddDays(n int) LocalDate {
	return DateOf(d.at().AddDate(0, 0, n))
}

// Equal reports whether both values name the same calendar date.
func (d LocalDate) Equal(o LocalDate) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Before reports whether d is strictly earlier than o.
func (d LocalDate) Before(o LocalDate) bool {
	return d.at().Before(o.at())
}

// String formats the date back to "YYYY-MM-DD".
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
