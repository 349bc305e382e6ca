package http

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RoomStatsReader is the minimal interface needed for the dashboard aggregate.
type RoomStatsReader interface {
	GetStats(ctx context.Context) domain.RoomStats
}

// RoomLister is the minimal interface needed for the inventory export.
type RoomLister interface {
	ListRooms(ctx context.Context) []domain.Room
}

// HandleRoomStats returns the room count and average price.
func HandleRoomStats(svc RoomStatsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		stats := svc.GetStats(r.Context())
		writeJSON(w, http.StatusOK, statsResponse{
			TotalRooms:   stats.Total,
			AveragePrice: stats.AveragePrice,
		})
	}
}

// HandleRoomExport streams the room inventory as an xlsx workbook.
func HandleRoomExport(svc RoomLister, logger *log.Logger) http.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		rooms := svc.ListRooms(r.Context())
		var buf bytes.Buffer
		if err := export.WriteRoomsXLSX(&buf, rooms); err != nil {
			logger.Printf("WARN: room export failed err=%v", err)
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="rooms.xlsx"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

type statsResponse struct {
	TotalRooms   int     `json:"total_rooms"`
	AveragePrice float64 `json:"average_price"`
}
