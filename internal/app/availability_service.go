package app

import (
	"context"
	"log"
	"sort"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
)

type AvailabilityRepository interface {
	ListRoomsForAvailability(ctx context.Context, accommodationID *int64) ([]domain.Room, error)
	BlockedRoomIDs(ctx context.Context, window domain.StayWindow, statuses []domain.ReservationStatus) ([]int64, error)
}

// AvailabilityService resolves which rooms can be booked for a stay. It only
// reads: nothing is locked or reserved, so a booking written afterwards must
// still guard against a concurrent booking of the same room.
type AvailabilityService struct {
	repo      AvailabilityRepository
	logger    *log.Logger
	policy    domain.BlockingPolicy
	imageBase string
}

func NewAvailabilityService(repo AvailabilityRepository, opts ...AvailabilityOption) *AvailabilityService {
	svc := &AvailabilityService{
		repo:      repo,
		logger:    log.Default(),
		policy:    domain.PolicyNonCancelled,
		imageBase: defaultImageBase,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AvailabilityOption func(*AvailabilityService)

func WithAvailabilityLogger(l *log.Logger) AvailabilityOption {
	return func(s *AvailabilityService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultPolicy sets the policy used when a request does not name one.
func WithDefaultPolicy(p domain.BlockingPolicy) AvailabilityOption {
	return func(s *AvailabilityService) {
		if p != "" {
			s.policy = p
		}
	}
}

func WithAvailabilityImageBase(base string) AvailabilityOption {
	return func(s *AvailabilityService) {
		if base != "" {
			s.imageBase = base
		}
	}
}

type FindAvailableInput struct {
	Window          domain.StayWindow
	AccommodationID *int64
	Policy          domain.BlockingPolicy
}

// FindAvailable returns the rooms with no blocking reservation overlapping
// the window, cheapest first. Storage failures yield an empty result.
func (s *AvailabilityService) FindAvailable(ctx context.Context, in FindAvailableInput) ([]domain.Room, error) {
	if !in.Window.CheckIn.Before(in.Window.CheckOut) {
		return nil, domain.ErrInvalidRange
	}
	policy := in.Policy
	if policy == "" {
		policy = s.policy
	}

	rooms, err := s.repo.ListRoomsForAvailability(ctx, in.AccommodationID)
	if err != nil {
		s.logger.Printf("WARN: availability room query failed err=%v", err)
		return []domain.Room{}, nil
	}
	if len(rooms) == 0 {
		return []domain.Room{}, nil
	}

	blockedIDs, err := s.repo.BlockedRoomIDs(ctx, in.Window, policy.Statuses())
	if err != nil {
		s.logger.Printf("WARN: availability reservation query failed err=%v", err)
		return []domain.Room{}, nil
	}
	blocked := make(map[int64]struct{}, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked[id] = struct{}{}
	}

	available := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, ok := blocked[room.ID]; ok {
			continue
		}
		room.ImageURL = resolveImageURL(s.imageBase, room.Image)
		if room.Amenities == nil {
			room.Amenities = []string{}
		}
		available = append(available, room)
	}

	sort.SliceStable(available, func(i, j int) bool {
		if available[i].Price != available[j].Price {
			return available[i].Price < available[j].Price
		}
		return available[i].Number < available[j].Number
	})
	return available, nil
}
