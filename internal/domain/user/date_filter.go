package user

import (
	"time"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

// PastDateFilter selects users registered in the last N days.
type PastDateFilter string

const (
	LastSevenDays  PastDateFilter = "last_7_days"
	LastThirtyDays PastDateFilter = "last_30_days"
	LastNinetyDays PastDateFilter = "last_90_days"
)

var pastWindows = map[PastDateFilter]int{
	LastSevenDays:  7,
	LastThirtyDays: 30,
	LastNinetyDays: 90,
}

func ParsePastDateFilter(raw string) (PastDateFilter, error) {
	f := PastDateFilter(raw)
	if _, ok := pastWindows[f]; !ok {
		return "", httperr.ErrInvalidData("invalid_date_filter", "unknown date filter %q", raw)
	}
	return f, nil
}

func (f PastDateFilter) Since(now time.Time) time.Time {
	return now.AddDate(0, 0, -pastWindows[f])
}
