package appointment

import (
	"time"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

// FutureDateFilter restricts listings to a window starting today.
type FutureDateFilter string

const (
	NextSevenDays  FutureDateFilter = "next_7_days"
	NextThirtyDays FutureDateFilter = "next_30_days"
	NextNinetyDays FutureDateFilter = "next_90_days"
)

var futureWindows = map[FutureDateFilter]int{
	NextSevenDays:  7,
	NextThirtyDays: 30,
	NextNinetyDays: 90,
}

func ParseFutureDateFilter(raw string) (FutureDateFilter, error) {
	f := FutureDateFilter(raw)
	if _, ok := futureWindows[f]; !ok {
		return "", httperr.ErrInvalidData("invalid_date_filter", "unknown date filter %q", raw)
	}
	return f, nil
}

// Window returns the inclusive [from, to] date range for the filter, counted
// from today.
func (f FutureDateFilter) Window(today time.Time) (time.Time, time.Time) {
	from := DateOnly(today)
	return from, from.AddDate(0, 0, futureWindows[f])
}

// DateOnly drops the clock part and keeps the calendar date as midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
