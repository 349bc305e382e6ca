package postgres

import (
	"fmt"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/amenity"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/jackc/pgx/v5"
)

const roomColumns = `
SELECT r.id, r.room_number, r.accommodation_id, COALESCE(a.name, ''), r.description,
	r.max_occupancy, r.price::float8, r.image, r.amenities, r.status, r.created_at, r.updated_at
FROM rooms r
LEFT JOIN accommodations a ON a.id = r.accommodation_id`

func scanRoom(row pgx.Row) (domain.Room, error) {
	var (
		room      domain.Room
		amenities *string
		status    string
	)
	err := row.Scan(
		&room.ID,
		&room.Number,
		&room.AccommodationID,
		&room.AccommodationName,
		&room.Description,
		&room.MaxOccupancy,
		&room.Price,
		&room.Image,
		&amenities,
		&status,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return domain.Room{}, err
	}
	room.Status = domain.RoomStatus(status)
	if amenities != nil {
		room.Amenities = amenity.Decode(*amenities)
	} else {
		room.Amenities = []string{}
	}
	return room, nil
}

func collectRooms(rows pgx.Rows, op string) ([]domain.Room, error) {
	defer rows.Close()

	rooms := []domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, storageErr(op, fmt.Errorf("scan room: %w", err))
		}
		rooms = append(rooms, room)
	}
	if rows.Err() != nil {
		return nil, storageErr(op, fmt.Errorf("iterate rooms: %w", rows.Err()))
	}
	return rooms, nil
}
