package http

import (
	"errors"
	"net/http"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/goccy/go-json"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeRouteNotFound         = "route_not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeInvalidRange          = "invalid_range"
	codeInvalidStatus         = "invalid_status"
	codeInvalidPolicy         = "invalid_policy"
	codeInvalidRoomInput      = "invalid_room_input"
	codeRoomNotFound          = "room_not_found"
	codeAccommodationNotFound = "accommodation_not_found"
	codeRoomNumberTaken       = "room_number_taken"
	codeRoomInUse             = "room_in_use"
	codeForbidden             = "forbidden"
	codeUnavailable           = "unavailable"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error        string   `json:"error"`
	Code         string   `json:"code"`
	Reservations int      `json:"reservations,omitempty"`
	Fields       []string `json:"fields,omitempty"`
	Routes       []string `json:"routes,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps a domain error to its HTTP status and code.
func writeServiceError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictError
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &conflict):
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:        conflict.Error(),
			Code:         codeRoomInUse,
			Reservations: conflict.Reservations,
		})
	case errors.As(err, &invalid):
		writeErrorResponse(w, http.StatusBadRequest, errorResponse{
			Error:  domain.ErrInvalidRoomInput.Error(),
			Code:   codeInvalidRoomInput,
			Fields: invalid.Fields,
		})
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeRoomInUse, err.Error())
	case errors.Is(err, domain.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, codeRoomNotFound, domain.ErrRoomNotFound.Error())
	case errors.Is(err, domain.ErrAccommodationNotFound):
		writeError(w, http.StatusBadRequest, codeAccommodationNotFound, domain.ErrAccommodationNotFound.Error())
	case errors.Is(err, domain.ErrRoomNumberTaken):
		writeError(w, http.StatusConflict, codeRoomNumberTaken, domain.ErrRoomNumberTaken.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	case errors.Is(err, domain.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, codeInvalidRange, domain.ErrInvalidRange.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, codeInvalidStatus, domain.ErrInvalidStatus.Error())
	case errors.Is(err, domain.ErrInvalidPolicy):
		writeError(w, http.StatusBadRequest, codeInvalidPolicy, domain.ErrInvalidPolicy.Error())
	case errors.Is(err, domain.ErrInvalidRoomInput):
		writeError(w, http.StatusBadRequest, codeInvalidRoomInput, domain.ErrInvalidRoomInput.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
