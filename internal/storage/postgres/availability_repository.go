package postgres

import (
	"context"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityRepository answers the two read-only queries behind room availability.
type AvailabilityRepository struct {
	db db
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{db: db{pool: pool}}
}

// ListRoomsForAvailability returns every room, or only those of one
// accommodation when accommodationID is set.
func (r *AvailabilityRepository) ListRoomsForAvailability(ctx context.Context, accommodationID *int64) ([]domain.Room, error) {
	const where = `
WHERE $1::bigint IS NULL OR r.accommodation_id = $1
ORDER BY r.price ASC, r.room_number ASC`
	rows, err := r.db.query(ctx, roomColumns+where, accommodationID)
	if err != nil {
		return nil, storageErr("list rooms for availability", err)
	}
	return collectRooms(rows, "list rooms for availability")
}

// storedBoundSlack widens the SQL prefilter so reservations stored as
// midnight dates are fetched before their bounds are moved to the standard
// hours. It exceeds the largest such move.
const storedBoundSlack = 24 * time.Hour

// BlockedRoomIDs returns the rooms holding a reservation in one of statuses
// whose stay overlaps the window. SQL narrows the candidates; the final
// arrival < checkout AND checkin < departure test is StayWindow.Overlaps, so
// date-only rows get the same check-in and check-out hours as the window.
func (r *AvailabilityRepository) BlockedRoomIDs(ctx context.Context, window domain.StayWindow, statuses []domain.ReservationStatus) ([]int64, error) {
	const query = `
SELECT room_id, arrival, departure
FROM reservations
WHERE status = ANY($1) AND arrival < $3 AND $2 < departure
ORDER BY room_id`

	rows, err := r.db.query(ctx, query,
		statusStrings(statuses),
		window.CheckIn.Add(-storedBoundSlack),
		window.CheckOut.Add(storedBoundSlack),
	)
	if err != nil {
		return nil, storageErr("blocked room ids", err)
	}
	defer rows.Close()

	var ids []int64
	seen := make(map[int64]struct{})
	for rows.Next() {
		var (
			id                 int64
			arrival, departure time.Time
		)
		if err := rows.Scan(&id, &arrival, &departure); err != nil {
			return nil, storageErr("blocked room ids", err)
		}
		if _, ok := seen[id]; ok || !window.Overlaps(arrival, departure) {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, storageErr("blocked room ids", rows.Err())
	}
	return ids, nil
}
