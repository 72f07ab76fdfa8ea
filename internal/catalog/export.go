package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Booking ID", "Customer", "Email", "Phone", "Item", "Date", "Time",
	"Seats/Qty", "Amount", "Status", "Booked On",
}

// ExportXLSX writes the (optionally status-filtered) booking list to a
// timestamped Excel file under dir and returns the file path.
func (b *Bookings) ExportXLSX(ctx context.Context, dir, status string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	bookings, err := b.List(ctx, status)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, booking := range bookings {
		values := []any{
			booking.BookingID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Title(),
			booking.EventDate(),
			booking.EventTime(),
			booking.SeatSummary(),
			booking.Total(),
			booking.Status,
			booking.BookingDate,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 22)
	_ = f.SetColWidth(sheetName, "B", "E", 25)
	_ = f.SetColWidth(sheetName, "F", "K", 16)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	b.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel export created")
	return filePath, nil
}
