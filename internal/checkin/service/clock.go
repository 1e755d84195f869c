package service

import "time"

// Clock supplies venue-local "now". The gate derives both the calendar
// day and the time of day from the returned value's location.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed venue location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
