// Package period resolves named reporting periods into inclusive calendar
// date ranges and formats month keys for chart labels.
package period

import (
	"time"

	"finanmind/internal/models"
)

// Token names a reporting period.
type Token string

const (
	CurrentMonth Token = "current_month"
	LastMonth    Token = "last_month"
	Last3Months  Token = "last_3_months"
	Last30Days   Token = "last30"
	CurrentYear  Token = "current_year"
)

// Tokens lists every supported period token.
var Tokens = []Token{CurrentMonth, LastMonth, Last3Months, Last30Days, CurrentYear}

// Range is an inclusive calendar date range.
type Range struct {
	Token Token       `json:"period"`
	Start models.Date `json:"start_date"`
	End   models.Date `json:"end_date"`
}

// Contains reports whether d falls inside the range, bounds included.
func (r Range) Contains(d models.Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

// Resolve maps a period token to its date range relative to today. Unknown
// or empty tokens resolve as current_month; the returned Token is the one
// that was applied.
func Resolve(token string, today time.Time) Range {
	y, m, _ := today.Date()
	day := models.NewDate(today)

	switch Token(token) {
	case LastMonth:
		return Range{Token: LastMonth, Start: models.DateOf(y, m-1, 1), End: models.DateOf(y, m, 0)}
	case Last3Months:
		return Range{Token: Last3Months, Start: models.DateOf(y, m-3, 1), End: models.DateOf(y, m+1, 0)}
	case Last30Days:
		return Range{Token: Last30Days, Start: day.AddDays(-30), End: day}
	case CurrentYear:
		return Range{Token: CurrentYear, Start: models.DateOf(y, time.January, 1), End: models.DateOf(y, time.December, 31)}
	default:
		return Range{Token: CurrentMonth, Start: models.DateOf(y, m, 1), End: models.DateOf(y, m+1, 0)}
	}
}

// TrailingMonths returns the rolling window [today - n months, today]. When
// the same day does not exist n months back, the start clamps to the last
// day of that month (Aug 31 minus 6 months is Feb 28 or 29).
func TrailingMonths(today time.Time, n int) Range {
	y, m, d := today.Date()
	first := models.DateOf(y, m-time.Month(n), 1)
	last := models.DateOf(first.Year(), first.Month()+1, 0)
	if d > last.Day() {
		d = last.Day()
	}
	return Range{
		Start: models.DateOf(first.Year(), first.Month(), d),
		End:   models.NewDate(today),
	}
}
