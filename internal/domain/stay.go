package domain

import "time"

// Standard hours applied when a stay is given as calendar dates only.
const (
	CheckInHour  = 14
	CheckOutHour = 12
)

// StayWindow is the half-open interval [CheckIn, CheckOut).
type StayWindow struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStayWindow builds a window from exact instants.
func NewStayWindow(checkIn, checkOut time.Time) (StayWindow, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return StayWindow{}, ErrInvalidRange
	}
	return StayWindow{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// StayWindowFromDates builds a window from calendar dates, applying the
// standard check-in and check-out hours. The departure date must fall after
// the arrival date.
func StayWindowFromDates(arrival, departure time.Time) (StayWindow, error) {
	a := dateOf(arrival)
	d := dateOf(departure)
	if arrival.IsZero() || departure.IsZero() || !a.Before(d) {
		return StayWindow{}, ErrInvalidRange
	}
	return StayWindow{
		CheckIn:  a.Add(CheckInHour * time.Hour),
		CheckOut: d.Add(CheckOutHour * time.Hour),
	}, nil
}

// Overlaps reports whether the reservation [arrival, departure) intersects
// the window. Stored bounds are read with StoredStay in the window's location.
func (w StayWindow) Overlaps(arrival, departure time.Time) bool {
	a, d := StoredStay(arrival, departure, w.CheckIn.Location())
	return Overlaps(w.CheckIn, w.CheckOut, a, d)
}

// StoredStay reads reservation bounds as the booking flow wrote them. A bound
// at exactly midnight in loc is a calendar date and gets the standard
// check-in or check-out hour, matching StayWindowFromDates. Other instants
// are kept.
func StoredStay(arrival, departure time.Time, loc *time.Location) (time.Time, time.Time) {
	return atHourIfDate(arrival, CheckInHour, loc), atHourIfDate(departure, CheckOutHour, loc)
}

func atHourIfDate(t time.Time, hour int, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	if local.Hour() != 0 || local.Minute() != 0 || local.Second() != 0 || local.Nanosecond() != 0 {
		return t
	}
	return time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
}

// Overlaps is the half-open overlap test: [a1,d1) and [a2,d2) conflict iff a1 < d2 && a2 < d1.
func Overlaps(a1, d1, a2, d2 time.Time) bool {
	return a1.Before(d2) && a2.Before(d1)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
