package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/app"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/clock"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
)

const dateLayout = "2006-01-02"

// AvailabilityFinder is the minimal interface needed by the availability endpoint.
type AvailabilityFinder interface {
	FindAvailable(ctx context.Context, in app.FindAvailableInput) ([]domain.Room, error)
}

// HandleAvailability serves GET /availability?checkin=&checkout=.
// Dates (YYYY-MM-DD) are read in the hotel's location and get the standard
// check-in and check-out hours; RFC3339 timestamps are used as given.
func HandleAvailability(svc AvailabilityFinder, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		query := r.URL.Query()
		window, err := parseStayWindow(query.Get("checkin"), query.Get("checkout"), clk.Location())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		in := app.FindAvailableInput{Window: window}
		if raw := query.Get("accommodation_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
				return
			}
			in.AccommodationID = &id
		}
		if raw := query.Get("policy"); raw != "" {
			policy, err := domain.ParseBlockingPolicy(raw)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			in.Policy = policy
		}

		rooms, err := svc.FindAvailable(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, availabilityResponse{
			CheckIn:  window.CheckIn,
			CheckOut: window.CheckOut,
			Rooms:    roomResponses(rooms),
		})
	}
}

func parseStayWindow(checkIn, checkOut string, loc *time.Location) (domain.StayWindow, error) {
	if checkIn == "" || checkOut == "" {
		return domain.StayWindow{}, domain.ErrInvalidRange
	}
	if loc == nil {
		loc = time.UTC
	}

	arrival, errA := time.ParseInLocation(dateLayout, checkIn, loc)
	departure, errD := time.ParseInLocation(dateLayout, checkOut, loc)
	if errA == nil && errD == nil {
		return domain.StayWindowFromDates(arrival, departure)
	}

	arrival, errA = time.Parse(time.RFC3339, checkIn)
	departure, errD = time.Parse(time.RFC3339, checkOut)
	if errA != nil || errD != nil {
		return domain.StayWindow{}, domain.ErrInvalidRange
	}
	// Stored date-only bounds are read in the window's location.
	return domain.NewStayWindow(arrival.In(loc), departure.In(loc))
}

type availabilityResponse struct {
	CheckIn  time.Time      `json:"checkin"`
	CheckOut time.Time      `json:"checkout"`
	Rooms    []roomResponse `json:"rooms"`
}
