package capacity

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

type WeekDay string

const (
	Monday    WeekDay = "monday"
	Tuesday   WeekDay = "tuesday"
	Wednesday WeekDay = "wednesday"
	Thursday  WeekDay = "thursday"
	Friday    WeekDay = "friday"
	Saturday  WeekDay = "saturday"
	Sunday    WeekDay = "sunday"
)

// indexed by time.Weekday
var byWeekday = [7]WeekDay{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekDays lists the days in calendar order starting on Monday.
func WeekDays() []WeekDay {
	return []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func ParseWeekDay(raw string) (WeekDay, error) {
	d := WeekDay(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range byWeekday {
		if d == known {
			return d, nil
		}
	}
	return "", httperr.ErrInvalidData("invalid_week_day", "unknown week day %q", raw)
}

func WeekDayOf(date time.Time) WeekDay {
	return byWeekday[date.Weekday()]
}

// Order is the position of d in a Monday-first week.
func (d WeekDay) Order() int {
	for i, known := range WeekDays() {
		if d == known {
			return i
		}
	}
	return len(byWeekday)
}
