package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/actor"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/clock"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/go-playground/validator/v10"
)

type RoomRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRoom(ctx context.Context, id int64) (domain.Room, error)
	GetRoomForUpdate(ctx context.Context, id int64) (domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	SearchRooms(ctx context.Context, keyword string) ([]domain.Room, error)
	RoomNumberExists(ctx context.Context, number string, excludeID int64) (bool, error)
	CreateRoom(ctx context.Context, room domain.Room) (int64, error)
	UpdateRoom(ctx context.Context, room domain.Room) error
	UpdateRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	DeleteRoom(ctx context.Context, id int64) error
	CountReservations(ctx context.Context, roomID int64) (int, error)
	CountActiveReservations(ctx context.Context, roomID int64, now time.Time) (int, error)
	DeleteReservationsByRoom(ctx context.Context, roomID int64) (int, error)
	Stats(ctx context.Context) (domain.RoomStats, error)
}

// StatsCache holds the dashboard aggregate between writes. Entries belong to
// a generation: GetStats reports the current one even on a miss,
// InvalidateStats starts a new one, and stats stored for an older
// generation are never returned.
type StatsCache interface {
	GetStats(ctx context.Context) (stats domain.RoomStats, gen int64, ok bool, err error)
	SetStats(ctx context.Context, gen int64, stats domain.RoomStats) error
	InvalidateStats(ctx context.Context) error
}

// RoomService applies one error policy to every room operation: reads log
// storage failures and return an empty or default result, writes return
// typed errors to the caller.
type RoomService struct {
	repo      RoomRepository
	clock     clock.Clock
	logger    *log.Logger
	cache     StatsCache
	imageBase string
	validate  *validator.Validate
}

func NewRoomService(repo RoomRepository, clk clock.Clock, opts ...RoomServiceOption) *RoomService {
	svc := &RoomService{
		repo:      repo,
		clock:     clk,
		logger:    log.Default(),
		imageBase: defaultImageBase,
		validate:  validator.New(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type RoomServiceOption func(*RoomService)

func WithRoomLogger(l *log.Logger) RoomServiceOption {
	return func(s *RoomService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStatsCache serves GetStats from c and clears it on every write.
func WithStatsCache(c StatsCache) RoomServiceOption {
	return func(s *RoomService) {
		s.cache = c
	}
}

// WithRoomImageBase sets the prefix for bare image file names.
func WithRoomImageBase(base string) RoomServiceOption {
	return func(s *RoomService) {
		if base != "" {
			s.imageBase = base
		}
	}
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	if id <= 0 {
		return domain.Room{}, domain.ErrInvalidID
	}
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrRoomNotFound) {
			s.logger.Printf("WARN: get room failed room_id=%d err=%v", id, err)
		}
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return s.enrich(room), nil
}

func (s *RoomService) ListRooms(ctx context.Context) []domain.Room {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		s.logger.Printf("WARN: list rooms failed err=%v", err)
		return []domain.Room{}
	}
	return s.enrichAll(rooms)
}

// SearchRooms matches keyword against room number, accommodation name, and
// description. An empty keyword lists every room.
func (s *RoomService) SearchRooms(ctx context.Context, keyword string) []domain.Room {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListRooms(ctx)
	}
	rooms, err := s.repo.SearchRooms(ctx, keyword)
	if err != nil {
		s.logger.Printf("WARN: search rooms failed keyword=%q err=%v", keyword, err)
		return []domain.Room{}
	}
	return s.enrichAll(rooms)
}

// RoomNumberExists reports whether number is used by a room other than excludeID (0 excludes none).
func (s *RoomService) RoomNumberExists(ctx context.Context, number string, excludeID int64) bool {
	number = strings.TrimSpace(number)
	if number == "" {
		return false
	}
	exists, err := s.repo.RoomNumberExists(ctx, number, excludeID)
	if err != nil {
		s.logger.Printf("WARN: room number check failed number=%q err=%v", number, err)
		return false
	}
	return exists
}

// GetStats serves the aggregate from the cache when it has one. Stats read
// from the database are stored under the generation seen before the read,
// so a write that invalidates in between keeps them from being served.
func (s *RoomService) GetStats(ctx context.Context) domain.RoomStats {
	var (
		gen      int64
		storable bool
	)
	if s.cache != nil {
		stats, g, ok, err := s.cache.GetStats(ctx)
		switch {
		case err != nil:
			s.logger.Printf("WARN: stats cache read failed err=%v", err)
		case ok:
			return stats
		default:
			gen, storable = g, true
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Printf("WARN: room stats failed err=%v", err)
		return domain.RoomStats{}
	}
	if storable {
		if err := s.cache.SetStats(ctx, gen, stats); err != nil {
			s.logger.Printf("WARN: stats cache write failed err=%v", err)
		}
	}
	return stats
}

func (s *RoomService) AddRoom(ctx context.Context, in domain.RoomInput) (int64, error) {
	in = normalizeRoomInput(in)
	if err := s.validateInput(in); err != nil {
		return 0, err
	}

	taken, err := s.repo.RoomNumberExists(ctx, in.Number, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, domain.ErrRoomNumberTaken
	}

	id, err := s.repo.CreateRoom(ctx, roomFromInput(0, in))
	if err != nil {
		return 0, err
	}
	s.afterWrite(ctx, "room.create", id)
	return id, nil
}

// UpdateRoom overwrites every column of room id with in.
func (s *RoomService) UpdateRoom(ctx context.Context, id int64, in domain.RoomInput) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	in = normalizeRoomInput(in)
	if err := s.validateInput(in); err != nil {
		return err
	}

	taken, err := s.repo.RoomNumberExists(ctx, in.Number, id)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrRoomNumberTaken
	}

	if err := s.repo.UpdateRoom(ctx, roomFromInput(id, in)); err != nil {
		return err
	}
	s.afterWrite(ctx, "room.update", id)
	return nil
}

// DeleteRoom removes a room that no reservation references.
func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetRoomForUpdate(txCtx, id); err != nil {
			return err
		}
		n, err := s.repo.CountReservations(txCtx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.ConflictError{RoomID: id, Action: "delete", Reservations: n}
		}
		return s.repo.DeleteRoom(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.afterWrite(ctx, "room.delete", id)
	return nil
}

// DeleteRoomCascade removes the room and every reservation referencing it in
// one transaction. It returns the number of reservations removed.
func (s *RoomService) DeleteRoomCascade(ctx context.Context, id int64) (int, error) {
	if id <= 0 {
		return 0, domain.ErrInvalidID
	}
	var removed int
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetRoomForUpdate(txCtx, id); err != nil {
			return err
		}
		n, err := s.repo.DeleteReservationsByRoom(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteRoom(txCtx, id); err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.afterWrite(ctx, "room.delete_cascade", id)
	s.logger.Printf("room cascade delete room_id=%d reservations=%d", id, removed)
	return removed, nil
}

// SetStatus moves a room between Available and Maintenance. A room with a
// pending or confirmed reservation departing after now cannot go to Maintenance.
func (s *RoomService) SetStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}

	now := s.clock.Now()
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetRoomForUpdate(txCtx, id); err != nil {
			return err
		}
		if status == domain.RoomStatusMaintenance {
			n, err := s.repo.CountActiveReservations(txCtx, id, now)
			if err != nil {
				return err
			}
			if n > 0 {
				return &domain.ConflictError{RoomID: id, Action: "set maintenance on", Reservations: n}
			}
		}
		return s.repo.UpdateRoomStatus(txCtx, id, status)
	})
	if err != nil {
		return err
	}
	s.afterWrite(ctx, "room.status."+strings.ToLower(string(status)), id)
	return nil
}

func (s *RoomService) validateInput(in domain.RoomInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &domain.ValidationError{Fields: fields}
	}
	return err
}

func (s *RoomService) afterWrite(ctx context.Context, action string, roomID int64) {
	if s.cache != nil {
		if err := s.cache.InvalidateStats(ctx); err != nil {
			s.logger.Printf("WARN: stats cache invalidate failed err=%v", err)
		}
	}
	a := actor.FromContext(ctx)
	s.logger.Printf("audit actor=%s request_id=%s action=%s room_id=%d", a.ID, a.RequestID, action, roomID)
}

func (s *RoomService) enrich(room domain.Room) domain.Room {
	room.ImageURL = resolveImageURL(s.imageBase, room.Image)
	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	return room
}

func (s *RoomService) enrichAll(rooms []domain.Room) []domain.Room {
	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, s.enrich(r))
	}
	return out
}

func normalizeRoomInput(in domain.RoomInput) domain.RoomInput {
	in.Number = strings.TrimSpace(in.Number)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	if in.Status == "" {
		in.Status = domain.RoomStatusAvailable
	}
	keys := make([]string, 0, len(in.Amenities))
	for _, k := range in.Amenities {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	in.Amenities = keys
	return in
}

func roomFromInput(id int64, in domain.RoomInput) domain.Room {
	return domain.Room{
		ID:              id,
		Number:          in.Number,
		AccommodationID: in.AccommodationID,
		Description:     in.Description,
		MaxOccupancy:    in.MaxOccupancy,
		Price:           in.Price,
		Image:           in.Image,
		Amenities:       in.Amenities,
		Status:          in.Status,
	}
}
