package timezone

import "time"

const DefaultTimezone = "America/New_York"

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

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock yields the business "now". Use cases take one so tests can pin time.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type BusinessClock struct {
	loc *time.Location
}

func NewClock(tz string) BusinessClock {
	return BusinessClock{loc: Location(tz)}
}

func (c BusinessClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c BusinessClock) Location() *time.Location {
	return c.loc
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Location() *time.Location {
	return c.At.Location()
}

// DaysBetween counts whole calendar days from a to b, ignoring clock time and
// DST shifts. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

const DateLayout = "2006-01-02"

// ParseDate reads a "YYYY-MM-DD" calendar date as UTC midnight, the form
// dates are stored and compared in.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today is the calendar date of now, as ParseDate would return it.
func Today(c Clock) time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
