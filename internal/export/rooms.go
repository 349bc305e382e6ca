// Package export renders room inventory for the administrative dashboard.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/amenity"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/xuri/excelize/v2"
)

const RoomsSheet = "Rooms"

var roomHeaders = []string{
	"Room", "Accommodation", "Description", "Max Occupancy", "Price", "Status", "Amenities", "Image",
}

// WriteRoomsXLSX writes one header row and one row per room to w as an xlsx workbook.
func WriteRoomsXLSX(w io.Writer, rooms []domain.Room) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", RoomsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range roomHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(RoomsSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, room := range rooms {
		row := []any{
			room.Number,
			room.AccommodationName,
			room.Description,
			room.MaxOccupancy,
			room.Price,
			string(room.Status),
			strings.Join(amenity.Labels(room.Amenities), ", "),
			room.ImageURL,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetSheetRow(RoomsSheet, cell, &row); err != nil {
			return fmt.Errorf("write room %d: %w", room.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
