package export

import (
	"bytes"
	"testing"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestWriteRoomsXLSX(t *testing.T) {
	rooms := []domain.Room{
		{ID: 1, Number: "101", AccommodationName: "Deluxe", MaxOccupancy: 2, Price: 120, Status: domain.RoomStatusAvailable, Amenities: []string{"wifi", "mini_bar"}},
		{ID: 2, Number: "102", AccommodationName: "Standard", MaxOccupancy: 1, Price: 80, Status: domain.RoomStatusMaintenance},
	}

	var buf bytes.Buffer
	if err := WriteRoomsXLSX(&buf, rooms); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(RoomsSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Room" || rows[1][0] != "101" || rows[2][5] != "Maintenance" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if rows[1][6] != "Free Wi-Fi, Mini Bar" {
		t.Fatalf("expected amenity labels, got %q", rows[1][6])
	}
}
