package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/amenity"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomRepository reads and writes room inventory. Amenities are stored as a
// JSON array and decoded on every read, legacy CSV rows included.
type RoomRepository struct {
	db db
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db{pool: pool}}
}

func (r *RoomRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db.pool, fn)
}

func (r *RoomRepository) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	return r.getRoom(ctx, roomColumns+` WHERE r.id = $1`, id)
}

// GetRoomForUpdate locks the room row until the surrounding transaction ends.
func (r *RoomRepository) GetRoomForUpdate(ctx context.Context, id int64) (domain.Room, error) {
	return r.getRoom(ctx, roomColumns+` WHERE r.id = $1 FOR UPDATE OF r`, id)
}

func (r *RoomRepository) getRoom(ctx context.Context, query string, id int64) (domain.Room, error) {
	room, err := scanRoom(r.db.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, storageErr("get room", err)
	}
	return room, nil
}

func (r *RoomRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.query(ctx, roomColumns+` ORDER BY r.room_number ASC, r.id ASC`)
	if err != nil {
		return nil, storageErr("list rooms", err)
	}
	return collectRooms(rows, "list rooms")
}

func (r *RoomRepository) SearchRooms(ctx context.Context, keyword string) ([]domain.Room, error) {
	const where = `
WHERE r.room_number ILIKE $1 OR a.name ILIKE $1 OR r.description ILIKE $1
ORDER BY r.room_number ASC, r.id ASC`
	rows, err := r.db.query(ctx, roomColumns+where, "%"+escapeLike(keyword)+"%")
	if err != nil {
		return nil, storageErr("search rooms", err)
	}
	return collectRooms(rows, "search rooms")
}

func (r *RoomRepository) RoomNumberExists(ctx context.Context, number string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM rooms WHERE room_number = $1 AND id <> $2)`
	var exists bool
	if err := r.db.queryRow(ctx, query, number, excludeID).Scan(&exists); err != nil {
		return false, storageErr("room number exists", err)
	}
	return exists, nil
}

func (r *RoomRepository) CreateRoom(ctx context.Context, room domain.Room) (int64, error) {
	const stmt = `
INSERT INTO rooms (room_number, accommodation_id, description, max_occupancy, price, image, amenities, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	var id int64
	err := r.db.queryRow(ctx, stmt,
		room.Number,
		room.AccommodationID,
		room.Description,
		room.MaxOccupancy,
		room.Price,
		room.Image,
		amenity.Encode(room.Amenities),
		string(room.Status),
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrAccommodationNotFound
		}
		return 0, storageErr("create room", err)
	}
	return id, nil
}

// UpdateRoom overwrites every column; there is no partial update.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room domain.Room) error {
	const stmt = `
UPDATE rooms
SET room_number = $2, accommodation_id = $3, description = $4, max_occupancy = $5,
	price = $6, image = $7, amenities = $8, status = $9, updated_at = NOW()
WHERE id = $1`

	tag, err := r.db.exec(ctx, stmt,
		room.ID,
		room.Number,
		room.AccommodationID,
		room.Description,
		room.MaxOccupancy,
		room.Price,
		room.Image,
		amenity.Encode(room.Amenities),
		string(room.Status),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrAccommodationNotFound
		}
		return storageErr("update room", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) UpdateRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	const stmt = `UPDATE rooms SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.exec(ctx, stmt, id, string(status))
	if err != nil {
		return storageErr("update room status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) DeleteRoom(ctx context.Context, id int64) error {
	tag, err := r.db.exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			// A reservation was written after the caller counted.
			return &domain.ConflictError{RoomID: id, Action: "delete", Reservations: r.blockingReservations(ctx, id)}
		}
		return storageErr("delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// blockingReservations recounts the rows behind a foreign key violation. The
// failed statement has aborted any surrounding transaction, so the count runs
// on the pool. It reports at least one.
func (r *RoomRepository) blockingReservations(ctx context.Context, roomID int64) int {
	var n int
	err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE room_id = $1`, roomID).Scan(&n)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// CountReservations counts reservations of any status that reference the room.
func (r *RoomRepository) CountReservations(ctx context.Context, roomID int64) (int, error) {
	var n int
	if err := r.db.queryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE room_id = $1`, roomID).Scan(&n); err != nil {
		return 0, storageErr("count reservations", err)
	}
	return n, nil
}

// CountActiveReservations counts pending or confirmed reservations departing after now.
func (r *RoomRepository) CountActiveReservations(ctx context.Context, roomID int64, now time.Time) (int, error) {
	const query = `
SELECT COUNT(*)
FROM reservations
WHERE room_id = $1 AND status = ANY($2) AND departure > $3`

	var n int
	err := r.db.queryRow(ctx, query, roomID, statusStrings(domain.ActiveReservationStatuses), now).Scan(&n)
	if err != nil {
		return 0, storageErr("count active reservations", err)
	}
	return n, nil
}

func (r *RoomRepository) DeleteReservationsByRoom(ctx context.Context, roomID int64) (int, error) {
	tag, err := r.db.exec(ctx, `DELETE FROM reservations WHERE room_id = $1`, roomID)
	if err != nil {
		return 0, storageErr("delete reservations", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *RoomRepository) Stats(ctx context.Context) (domain.RoomStats, error) {
	const query = `SELECT COUNT(*), COALESCE(AVG(price), 0)::float8 FROM rooms`

	var stats domain.RoomStats
	if err := r.db.queryRow(ctx, query).Scan(&stats.Total, &stats.AveragePrice); err != nil {
		return domain.RoomStats{}, storageErr("room stats", err)
	}
	return stats, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
