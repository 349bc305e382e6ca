package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/amenity"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/goccy/go-json"
)

// RoomService is the room inventory surface used by the room endpoints.
type RoomService interface {
	GetRoom(ctx context.Context, id int64) (domain.Room, error)
	ListRooms(ctx context.Context) []domain.Room
	SearchRooms(ctx context.Context, keyword string) []domain.Room
	RoomNumberExists(ctx context.Context, number string, excludeID int64) bool
	AddRoom(ctx context.Context, in domain.RoomInput) (int64, error)
	UpdateRoom(ctx context.Context, id int64, in domain.RoomInput) error
	DeleteRoom(ctx context.Context, id int64) error
	DeleteRoomCascade(ctx context.Context, id int64) (int, error)
	SetStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

// HandleRooms serves GET /rooms (optionally ?q=) and POST /rooms.
func HandleRooms(svc RoomService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			var rooms []domain.Room
			if q := r.URL.Query().Get("q"); q != "" {
				rooms = svc.SearchRooms(r.Context(), q)
			} else {
				rooms = svc.ListRooms(r.Context())
			}
			writeJSON(w, http.StatusOK, roomResponses(rooms))
		case http.MethodPost:
			in, ok := decodeRoomRequest(w, r)
			if !ok {
				return
			}
			id, err := svc.AddRoom(r.Context(), in)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, createRoomResponse{ID: id})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleRoom serves /rooms/{id}, /rooms/{id}/status and /rooms/exists.
func HandleRoom(svc RoomService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "rooms" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if len(parts) == 2 && parts[1] == "exists" {
			handleRoomExists(svc, w, r)
			return
		}

		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		switch {
		case len(parts) == 2:
			handleRoomItem(svc, id, w, r)
		case len(parts) == 3 && parts[2] == "status":
			handleRoomStatus(svc, id, w, r)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleRoomItem(svc RoomService, id int64, w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		room, err := svc.GetRoom(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newRoomResponse(room))
	case http.MethodPut:
		in, ok := decodeRoomRequest(w, r)
		if !ok {
			return
		}
		if err := svc.UpdateRoom(r.Context(), id, in); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if r.URL.Query().Get("cascade") == "true" {
			removed, err := svc.DeleteRoomCascade(r.Context(), id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, deleteRoomResponse{ID: id, ReservationsRemoved: removed})
			return
		}
		if err := svc.DeleteRoom(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleRoomStatus(svc RoomService, id int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	var req statusRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if err := svc.SetStatus(r.Context(), id, domain.RoomStatus(req.Status)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleRoomExists(svc RoomService, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	var excludeID int64
	if raw := query.Get("exclude_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}
		excludeID = parsed
	}

	exists := svc.RoomNumberExists(r.Context(), query.Get("number"), excludeID)
	writeJSON(w, http.StatusOK, existsResponse{Exists: exists})
}

func decodeRoomRequest(w http.ResponseWriter, r *http.Request) (domain.RoomInput, bool) {
	var req roomRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return domain.RoomInput{}, false
	}
	return req.input(), true
}

// roomRequest accepts amenities either as a JSON array or as an already
// encoded string (JSON text or a comma-separated list).
type roomRequest struct {
	Number          string          `json:"room_number"`
	AccommodationID int64           `json:"accommodation_id"`
	Description     string          `json:"description"`
	MaxOccupancy    int             `json:"max_occupancy"`
	Price           float64         `json:"price"`
	Image           string          `json:"image"`
	Amenities       json.RawMessage `json:"amenities"`
	Status          string          `json:"status"`
}

func (r roomRequest) input() domain.RoomInput {
	var amenities []string
	if len(r.Amenities) > 0 {
		amenities = amenity.Normalize([]byte(r.Amenities))
	}
	return domain.RoomInput{
		Number:          r.Number,
		AccommodationID: r.AccommodationID,
		Description:     r.Description,
		MaxOccupancy:    r.MaxOccupancy,
		Price:           r.Price,
		Image:           r.Image,
		Amenities:       amenities,
		Status:          domain.RoomStatus(r.Status),
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type roomResponse struct {
	ID                int64     `json:"id"`
	Number            string    `json:"room_number"`
	AccommodationID   int64     `json:"accommodation_id"`
	AccommodationName string    `json:"accommodation_name"`
	Description       string    `json:"description"`
	MaxOccupancy      int       `json:"max_occupancy"`
	Price             float64   `json:"price"`
	Image             string    `json:"image"`
	ImageURL          string    `json:"image_url"`
	Amenities         []string  `json:"amenities"`
	AmenityLabels     []string  `json:"amenity_labels"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func newRoomResponse(room domain.Room) roomResponse {
	amenities := room.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return roomResponse{
		ID:                room.ID,
		Number:            room.Number,
		AccommodationID:   room.AccommodationID,
		AccommodationName: room.AccommodationName,
		Description:       room.Description,
		MaxOccupancy:      room.MaxOccupancy,
		Price:             room.Price,
		Image:             room.Image,
		ImageURL:          room.ImageURL,
		Amenities:         amenities,
		AmenityLabels:     amenity.Labels(amenities),
		Status:            string(room.Status),
		CreatedAt:         room.CreatedAt,
		UpdatedAt:         room.UpdatedAt,
	}
}

func roomResponses(rooms []domain.Room) []roomResponse {
	resp := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, newRoomResponse(room))
	}
	return resp
}

type createRoomResponse struct {
	ID int64 `json:"id"`
}

type deleteRoomResponse struct {
	ID                  int64 `json:"id"`
	ReservationsRemoved int   `json:"reservations_removed"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}
