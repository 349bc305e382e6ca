package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/app"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/clock"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/storage/postgres"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/testutil"
)

func newIntegrationServer(t *testing.T, clk clock.Clock) (*httptest.Server, int64) {
	t.Helper()
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	logger := log.New(io.Discard, "", 0)
	roomSvc := app.NewRoomService(postgres.NewRoomRepository(pool), clk, app.WithRoomLogger(logger))
	availSvc := app.NewAvailabilityService(postgres.NewAvailabilityRepository(pool), app.WithAvailabilityLogger(logger))

	mux := http.NewServeMux()
	mux.Handle("/rooms", HandleRooms(roomSvc))
	mux.Handle("/rooms/", HandleRoom(roomSvc))
	mux.Handle("/availability", HandleAvailability(availSvc, clk))
	mux.Handle("/admin/rooms/stats", HandleRoomStats(roomSvc))
	mux.Handle("/", NotFoundHandler())

	srv := httptest.NewServer(RequestContext(mux))
	t.Cleanup(srv.Close)

	return srv, testutil.InsertAccommodation(t, ctx, pool, "Standard")
}

func TestRooms_HTTPIntegration(t *testing.T) {
	clk := clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	srv, accID := newIntegrationServer(t, clk)
	client := srv.Client()

	body := fmt.Sprintf(`{"room_number":"201","accommodation_id":%d,"max_occupancy":2,"price":95,"amenities":"wifi,tv"}`, accID)
	res, err := client.Post(srv.URL+"/rooms", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post room: %v", err)
	}
	var created createRoomResponse
	decodeBody(t, res, http.StatusCreated, &created)
	if created.ID == 0 {
		t.Fatalf("expected room id to be set")
	}

	res, err = client.Post(srv.URL+"/rooms", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post duplicate: %v", err)
	}
	var dup errorResponse
	decodeBody(t, res, http.StatusConflict, &dup)
	if dup.Code != codeRoomNumberTaken {
		t.Fatalf("expected code %s, got %s", codeRoomNumberTaken, dup.Code)
	}

	res, err = client.Get(fmt.Sprintf("%s/rooms/%d", srv.URL, created.ID))
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	var room roomResponse
	decodeBody(t, res, http.StatusOK, &room)
	if room.AccommodationName != "Standard" || len(room.Amenities) != 2 || room.Status != "Available" {
		t.Fatalf("unexpected room %+v", room)
	}

	res, err = client.Get(srv.URL + "/admin/rooms/stats")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	var stats statsResponse
	decodeBody(t, res, http.StatusOK, &stats)
	if stats.TotalRooms != 1 || stats.AveragePrice != 95 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestAvailability_HTTPIntegration(t *testing.T) {
	clk := clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	accID := testutil.InsertAccommodation(t, ctx, pool, "Standard")
	r1 := testutil.InsertRoom(t, ctx, pool, domain.Room{Number: "R1", AccommodationID: accID, MaxOccupancy: 2, Price: 100})
	r2 := testutil.InsertRoom(t, ctx, pool, domain.Room{Number: "R2", AccommodationID: accID, MaxOccupancy: 2, Price: 80})
	guest := testutil.InsertGuest(t, ctx, pool, "Guest")
	testutil.InsertReservation(t, ctx, pool, domain.Reservation{
		RoomID:    r1,
		GuestID:   guest,
		Arrival:   time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
		Departure: time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC),
		Status:    domain.ReservationStatusConfirmed,
	})

	roomSvc := app.NewRoomService(postgres.NewRoomRepository(pool), clk, app.WithRoomLogger(log.New(io.Discard, "", 0)))
	availSvc := app.NewAvailabilityService(postgres.NewAvailabilityRepository(pool))
	mux := http.NewServeMux()
	mux.Handle("/rooms/", HandleRoom(roomSvc))
	mux.Handle("/availability", HandleAvailability(availSvc, clk))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/availability?checkin=2025-06-11&checkout=2025-06-13")
	if err != nil {
		t.Fatalf("get availability: %v", err)
	}
	var overlapping availabilityResponse
	decodeBody(t, res, http.StatusOK, &overlapping)
	if len(overlapping.Rooms) != 1 || overlapping.Rooms[0].ID != r2 {
		t.Fatalf("expected only R2, got %+v", overlapping.Rooms)
	}

	res, err = srv.Client().Get(srv.URL + "/availability?checkin=2025-06-12&checkout=2025-06-14")
	if err != nil {
		t.Fatalf("get availability: %v", err)
	}
	var turnover availabilityResponse
	decodeBody(t, res, http.StatusOK, &turnover)
	if len(turnover.Rooms) != 2 || turnover.Rooms[0].ID != r2 || turnover.Rooms[1].ID != r1 {
		t.Fatalf("expected R2 then R1 on turnover day, got %+v", turnover.Rooms)
	}

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/rooms/%d", srv.URL, r1), nil)
	res, err = srv.Client().Do(req)
	if err != nil {
		t.Fatalf("delete room: %v", err)
	}
	var conflict errorResponse
	decodeBody(t, res, http.StatusConflict, &conflict)
	if conflict.Reservations != 1 {
		t.Fatalf("expected 1 blocking reservation, got %d", conflict.Reservations)
	}

	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/rooms/%d?cascade=true", srv.URL, r1), nil)
	res, err = srv.Client().Do(req)
	if err != nil {
		t.Fatalf("cascade delete room: %v", err)
	}
	var deleted deleteRoomResponse
	decodeBody(t, res, http.StatusOK, &deleted)
	if deleted.ReservationsRemoved != 1 {
		t.Fatalf("expected 1 reservation removed, got %d", deleted.ReservationsRemoved)
	}
	if n := testutil.CountReservations(t, ctx, pool, r1); n != 0 {
		t.Fatalf("expected no reservations left, got %d", n)
	}
}

func decodeBody(t *testing.T, res *http.Response, wantStatus int, v any) {
	t.Helper()
	defer res.Body.Close()
	if res.StatusCode != wantStatus {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("expected status %d, got %d (%s)", wantStatus, res.StatusCode, raw)
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
