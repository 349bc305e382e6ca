package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
)

var errBoom = errors.New("boom")

// fakeRoomRepo keeps rooms and reservations in memory. WithTx snapshots the
// state and restores it when fn fails, so tests can observe atomicity.
type fakeRoomRepo struct {
	rooms        map[int64]domain.Room
	reservations []domain.Reservation
	nextID       int64

	failOn   string
	failWith error
	txCount  int

	statsCalls int
	onStats    func()
}

func newFakeRoomRepo(rooms []domain.Room, reservations []domain.Reservation) *fakeRoomRepo {
	f := &fakeRoomRepo{rooms: make(map[int64]domain.Room), nextID: 1}
	for _, r := range rooms {
		f.rooms[r.ID] = r
		if r.ID >= f.nextID {
			f.nextID = r.ID + 1
		}
	}
	f.reservations = append([]domain.Reservation{}, reservations...)
	return f
}

func (f *fakeRoomRepo) fail(op string) error {
	if f.failOn == op {
		if f.failWith != nil {
			return f.failWith
		}
		return &domain.StorageError{Op: op, Err: errBoom}
	}
	return nil
}

func (f *fakeRoomRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txCount++
	rooms := make(map[int64]domain.Room, len(f.rooms))
	for k, v := range f.rooms {
		rooms[k] = v
	}
	reservations := append([]domain.Reservation{}, f.reservations...)
	if err := fn(ctx); err != nil {
		f.rooms = rooms
		f.reservations = reservations
		return err
	}
	return nil
}

func (f *fakeRoomRepo) GetRoom(_ context.Context, id int64) (domain.Room, error) {
	if err := f.fail("GetRoom"); err != nil {
		return domain.Room{}, err
	}
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return r, nil
}

func (f *fakeRoomRepo) GetRoomForUpdate(ctx context.Context, id int64) (domain.Room, error) {
	if err := f.fail("GetRoomForUpdate"); err != nil {
		return domain.Room{}, err
	}
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return r, nil
}

func (f *fakeRoomRepo) sorted(match func(domain.Room) bool) []domain.Room {
	out := make([]domain.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (f *fakeRoomRepo) ListRooms(_ context.Context) ([]domain.Room, error) {
	if err := f.fail("ListRooms"); err != nil {
		return nil, err
	}
	return f.sorted(func(domain.Room) bool { return true }), nil
}

func (f *fakeRoomRepo) SearchRooms(_ context.Context, keyword string) ([]domain.Room, error) {
	if err := f.fail("SearchRooms"); err != nil {
		return nil, err
	}
	kw := strings.ToLower(keyword)
	return f.sorted(func(r domain.Room) bool {
		return strings.Contains(strings.ToLower(r.Number), kw) ||
			strings.Contains(strings.ToLower(r.AccommodationName), kw) ||
			strings.Contains(strings.ToLower(r.Description), kw)
	}), nil
}

func (f *fakeRoomRepo) RoomNumberExists(_ context.Context, number string, excludeID int64) (bool, error) {
	if err := f.fail("RoomNumberExists"); err != nil {
		return false, err
	}
	for _, r := range f.rooms {
		if r.Number == number && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoomRepo) CreateRoom(_ context.Context, room domain.Room) (int64, error) {
	if err := f.fail("CreateRoom"); err != nil {
		return 0, err
	}
	room.ID = f.nextID
	f.nextID++
	f.rooms[room.ID] = room
	return room.ID, nil
}

func (f *fakeRoomRepo) UpdateRoom(_ context.Context, room domain.Room) error {
	if err := f.fail("UpdateRoom"); err != nil {
		return err
	}
	if _, ok := f.rooms[room.ID]; !ok {
		return domain.ErrRoomNotFound
	}
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) UpdateRoomStatus(_ context.Context, id int64, status domain.RoomStatus) error {
	if err := f.fail("UpdateRoomStatus"); err != nil {
		return err
	}
	r, ok := f.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	r.Status = status
	f.rooms[id] = r
	return nil
}

func (f *fakeRoomRepo) DeleteRoom(_ context.Context, id int64) error {
	if err := f.fail("DeleteRoom"); err != nil {
		return err
	}
	if _, ok := f.rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepo) CountReservations(_ context.Context, roomID int64) (int, error) {
	if err := f.fail("CountReservations"); err != nil {
		return 0, err
	}
	n := 0
	for _, res := range f.reservations {
		if res.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRoomRepo) CountActiveReservations(_ context.Context, roomID int64, now time.Time) (int, error) {
	if err := f.fail("CountActiveReservations"); err != nil {
		return 0, err
	}
	n := 0
	for _, res := range f.reservations {
		if res.RoomID != roomID || !res.Departure.After(now) {
			continue
		}
		if res.Status == domain.ReservationStatusPending || res.Status == domain.ReservationStatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (f *fakeRoomRepo) DeleteReservationsByRoom(_ context.Context, roomID int64) (int, error) {
	if err := f.fail("DeleteReservationsByRoom"); err != nil {
		return 0, err
	}
	kept := f.reservations[:0:0]
	removed := 0
	for _, res := range f.reservations {
		if res.RoomID == roomID {
			removed++
			continue
		}
		kept = append(kept, res)
	}
	f.reservations = kept
	return removed, nil
}

func (f *fakeRoomRepo) Stats(_ context.Context) (domain.RoomStats, error) {
	if err := f.fail("Stats"); err != nil {
		return domain.RoomStats{}, err
	}
	f.statsCalls++
	var stats domain.RoomStats
	var sum float64
	for _, r := range f.rooms {
		stats.Total++
		sum += r.Price
	}
	if stats.Total > 0 {
		stats.AveragePrice = sum / float64(stats.Total)
	}
	if f.onStats != nil {
		f.onStats()
	}
	return stats, nil
}

func (f *fakeRoomRepo) reservationsFor(roomID int64) int {
	n, _ := f.CountReservations(context.Background(), roomID)
	return n
}

// fakeAvailabilityRepo answers availability queries from the same in-memory
// rows, applying the half-open overlap rule.
type fakeAvailabilityRepo struct {
	rooms        []domain.Room
	reservations []domain.Reservation

	roomsErr   error
	blockedErr error
}

func (f *fakeAvailabilityRepo) ListRoomsForAvailability(_ context.Context, accommodationID *int64) ([]domain.Room, error) {
	if f.roomsErr != nil {
		return nil, f.roomsErr
	}
	var out []domain.Room
	for _, r := range f.rooms {
		if accommodationID != nil && r.AccommodationID != *accommodationID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) BlockedRoomIDs(_ context.Context, window domain.StayWindow, statuses []domain.ReservationStatus) ([]int64, error) {
	if f.blockedErr != nil {
		return nil, f.blockedErr
	}
	seen := make(map[int64]bool)
	var out []int64
	for _, res := range f.reservations {
		if !containsStatus(statuses, res.Status) || !window.Overlaps(res.Arrival, res.Departure) {
			continue
		}
		if !seen[res.RoomID] {
			seen[res.RoomID] = true
			out = append(out, res.RoomID)
		}
	}
	return out, nil
}

func containsStatus(statuses []domain.ReservationStatus, s domain.ReservationStatus) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

type fakeStatsCache struct {
	gen         int64
	stats       *domain.RoomStats
	statsGen    int64
	gets        int
	invalidates int
}

func (c *fakeStatsCache) GetStats(_ context.Context) (domain.RoomStats, int64, bool, error) {
	c.gets++
	if c.stats == nil || c.statsGen != c.gen {
		return domain.RoomStats{}, c.gen, false, nil
	}
	return *c.stats, c.gen, true, nil
}

func (c *fakeStatsCache) SetStats(_ context.Context, gen int64, stats domain.RoomStats) error {
	c.stats = &stats
	c.statsGen = gen
	return nil
}

func (c *fakeStatsCache) InvalidateStats(_ context.Context) error {
	c.invalidates++
	c.gen++
	return nil
}
