package domain

import "time"

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusMaintenance RoomStatus = "Maintenance"
)

// Valid reports whether s is one of the statuses a room can be set to.
func (s RoomStatus) Valid() bool {
	return s == RoomStatusAvailable || s == RoomStatusMaintenance
}

// Room is a bookable unit of inventory. Amenities are always decoded keys,
// never the stored representation.
type Room struct {
	ID                int64
	Number            string
	AccommodationID   int64
	AccommodationName string
	Description       string
	MaxOccupancy      int
	Price             float64
	Image             string
	ImageURL          string
	Amenities         []string
	Status            RoomStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RoomInput carries the complete state of a room for create and update.
// Updates overwrite every column, so callers pass the full record.
type RoomInput struct {
	Number          string     `validate:"required,max=20"`
	AccommodationID int64      `validate:"required,gt=0"`
	Description     string     `validate:"max=2000"`
	MaxOccupancy    int        `validate:"gte=1,lte=50"`
	Price           float64    `validate:"gte=0"`
	Image           string     `validate:"max=512"`
	Amenities       []string   `validate:"dive,required,max=64"`
	Status          RoomStatus `validate:"omitempty,oneof=Available Maintenance"`
}

// RoomStats is the dashboard aggregate over the whole inventory.
type RoomStats struct {
	Total        int
	AveragePrice float64
}
