package clock

import "time"

// Clock is the hotel's time source. Location is the property's local zone,
// used to interpret date-only stays.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a clock backed by time.Now in loc (UTC when nil).
func NewSystem(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c systemClock) Location() *time.Location {
	return c.loc
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock frozen at t, in t's location.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func (f fixedClock) Location() *time.Location {
	return f.now.Location()
}
