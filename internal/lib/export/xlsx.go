// Package export renders bookings into an xlsx workbook for the admin download.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"slotBooker/internal/models"
)

const (
	SheetName   = "Bookings"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []string{"ID", "Student", "Meeting type", "Day", "Time", "Created at"}

// WriteBookings writes one header row plus one row per booking to w.
func WriteBookings(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, toRow(header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(SheetName, "A1", endCell, style)
	}

	for i, b := range bookings {
		row := []interface{}{
			b.ID,
			b.StudentName,
			b.MeetingType,
			b.Day,
			b.Time,
			b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return fmt.Errorf("write booking %d: %w", b.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	return f.SetSheetRow(SheetName, cell, &values)
}

func toRow(cols []string) []interface{} {
	row := make([]interface{}, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}
