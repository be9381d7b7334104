package timezone

import "time"

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Clock tells the time in the service timezone. Calendar dates (today,
// appointment dates) are derived from it.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(tz string) Clock {
	return Clock{loc: Location(tz), now: time.Now}
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time, tz string) Clock {
	return Clock{loc: Location(tz), now: func() time.Time { return t }}
}

func (c Clock) Now() time.Time {
	now := c.now
	if now == nil {
		now = time.Now
	}
	loc := c.loc
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// Today is the local calendar date as midnight UTC, the form dates are
// stored in.
func (c Clock) Today() time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
