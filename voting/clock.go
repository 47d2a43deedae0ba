package voting

import "time"

type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time { return time.Now().In(loc) })
}

// PinnedDateClock keeps the wall-clock time of day but always reports the
// calendar date of day.
func PinnedDateClock(day time.Time, loc *time.Location) Clock {
	y, m, d := day.Date()
	return ClockFunc(func() time.Time {
		now := time.Now().In(loc)
		return time.Date(y, m, d, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), loc)
	})
}

// FixedClock always returns t. Used in tests.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
