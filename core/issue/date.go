// Package issue computes publication dates of the monthly edition.
//
// An issue appears on the issuance weekday of the second calendar row of
// its month (Monday-first grid). When that cell is empty or falls in the
// first six days, the third row is used instead.
package issue

import (
	"fmt"
	"time"
)

// Wednesday replaced Thursday as issuance weekday after April 2014.
const (
	cutoverYear  = 2014
	cutoverMonth = time.April
)

// Weekday returns the issuance weekday for the given month.
func Weekday(year int, month time.Month) time.Weekday {
	if year > cutoverYear || year == cutoverYear && month > cutoverMonth {
		return time.Wednesday
	}
	return time.Thursday
}

// IssueDate returns the publication date of the issue for year and month.
// A zero year or month is taken from now. The result is midnight in now's
// location.
func IssueDate(year int, month time.Month, now time.Time) time.Time {
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	column := weekdayColumn(Weekday(year, month))
	day := gridDay(year, month, 1, column)
	if day <= 6 {
		day = gridDay(year, month, 2, column)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// CurrentIssueDate returns the most recent issue date not after now,
// walking backward one month at a time.
func CurrentIssueDate(now time.Time) time.Time {
	today := truncateDay(now)
	year, month := now.Year(), now.Month()
	for {
		d := IssueDate(year, month, now)
		if !d.After(today) {
			return d
		}
		month--
		if month == 0 {
			month = time.December
			year--
		}
	}
}

// Issues lists this year's issue dates from now's month back to January.
func Issues(now time.Time) []time.Time {
	dates := make([]time.Time, 0, int(now.Month()))
	for m := now.Month(); m >= time.January; m-- {
		dates = append(dates, IssueDate(now.Year(), m, now))
	}
	return dates
}

// IsFuture reports whether d lies after now's calendar day.
func IsFuture(d, now time.Time) bool {
	return truncateDay(d).After(truncateDay(now))
}

// PathDate formats d for the issue lookup path (YYYY-MM-DD).
func PathDate(d time.Time) string { return d.Format(time.DateOnly) }

// FileDate formats d for output file names (YYYYMMDD).
func FileDate(d time.Time) string { return d.Format("20060102") }

// CoverURL returns the cover image URL of the issue published on d.
func CoverURL(d time.Time) string {
	return fmt.Sprintf("https://dl.taz.de/titel/%d/lmd_%s.120.jpg", d.Year(), d.Format("2006_01_02"))
}

// ParsePathDate parses a YYYY-MM-DD issue date.
func ParsePathDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing issue date %q: %w", s, err)
	}
	return d, nil
}

// weekdayColumn maps a weekday onto a Monday-first column index.
func weekdayColumn(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// gridDay returns the day in the given row and column of the month grid,
// or 0 when that cell belongs to an adjacent month.
func gridDay(year int, month time.Month, row, column int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := weekdayColumn(first.Weekday())
	day := row*7 + column - offset + 1
	if day < 1 || day > daysIn(year, month) {
		return 0
	}
	return day
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
