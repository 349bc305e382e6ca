package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "Pending"
	ReservationStatusConfirmed  ReservationStatus = "Confirmed"
	ReservationStatusCancelled  ReservationStatus = "Cancelled"
	ReservationStatusCheckedIn  ReservationStatus = "CheckedIn"
	ReservationStatusCheckedOut ReservationStatus = "CheckedOut"
)

// Reservation is read-only from this service's point of view; rows are
// written by the booking flow.
type Reservation struct {
	ID               int64
	ConfirmationCode string
	RoomID           int64
	GuestID          int64
	Arrival          time.Time
	Departure        time.Time
	Status           ReservationStatus
	Price            float64
	BookedAt         time.Time
}

// ActiveReservationStatuses are the statuses that hold a room for a future stay.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
}

// BlockingPolicy selects which reservation statuses make a room unavailable.
type BlockingPolicy string

const (
	// PolicyNonCancelled blocks on every status except Cancelled.
	PolicyNonCancelled BlockingPolicy = "non_cancelled"
	// PolicyActiveOnly blocks only on Pending and Confirmed.
	PolicyActiveOnly BlockingPolicy = "active_only"
)

// ParseBlockingPolicy maps a config or query value to a policy. Empty means the default.
func ParseBlockingPolicy(s string) (BlockingPolicy, error) {
	switch BlockingPolicy(s) {
	case "":
		return PolicyNonCancelled, nil
	case PolicyNonCancelled, PolicyActiveOnly:
		return BlockingPolicy(s), nil
	default:
		return "", ErrInvalidPolicy
	}
}

// Statuses returns the reservation statuses that block availability under p.
func (p BlockingPolicy) Statuses() []ReservationStatus {
	if p == PolicyActiveOnly {
		return append([]ReservationStatus(nil), ActiveReservationStatuses...)
	}
	return []ReservationStatus{
		ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusCheckedIn,
		ReservationStatusCheckedOut,
	}
}

// Blocks reports whether a reservation in status s makes its room unavailable under p.
func (p BlockingPolicy) Blocks(s ReservationStatus) bool {
	for _, st := range p.Statuses() {
		if st == s {
			return true
		}
	}
	return false
}
