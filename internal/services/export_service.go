package services

import (
	"context"
	"fmt"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/upload"
	"cinecraft/internal/utils"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeaders = []string{"ID", "Name", "Email", "Phone", "Service", "Date", "Time", "Status", "Message", "Attachment", "Attachment Type", "Created At"}

// ExportService builds the bookings spreadsheet for the admin download.
type ExportService struct {
	Bookings  BookingService
	Lister    func(ctx context.Context, f domain.ListFilter) ([]models.Booking, error)
	Now       func() time.Time
	RequestID string
}

func (s ExportService) list(ctx context.Context, f domain.ListFilter) ([]models.Booking, error) {
	if s.Lister != nil {
		return s.Lister(ctx, f)
	}
	return s.Bookings.List(ctx, f)
}

// BookingsXLSX exports bookings, optionally only one status.
func (s ExportService) BookingsXLSX(ctx context.Context, status string) ([]byte, string, error) {
	if status != "" && !models.ValidBookingStatus(status) {
		return nil, "", fieldError("status", "Invalid booking status")
	}
	list, err := s.list(ctx, domain.ListFilter{Status: status})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", domain.InternalError{Err: fmt.Errorf("error creating sheet: %w", err)}
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", last, headerStyle)

	statusStyles := map[string]int{}
	for st, color := range map[string]string{
		models.BookingPending:   "#FFF2CC",
		models.BookingConfirmed: "#E2EFDA",
		models.BookingCompleted: "#D9E1F2",
		models.BookingCancelled: "#F8CBAD",
	} {
		if id, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}}); err == nil {
			statusStyles[st] = id
		}
	}

	for r, b := range list {
		row := r + 2
		values := []interface{}{
			b.ID, b.Name, b.Email, b.Phone, b.ServiceTitle, b.Date, b.Time, b.Status,
			b.Message, b.Image, upload.FileType(b.Image), utils.FormatDateTime(b.CreatedAt),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
		if style, ok := statusStyles[b.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(8, row)
			f.SetCellStyle(exportSheet, cell, cell, style)
		}
	}
	f.SetColWidth(exportSheet, "B", "E", 22)
	f.SetColWidth(exportSheet, "I", "J", 40)
	f.SetColWidth(exportSheet, "L", "L", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	name := "bookings"
	if status != "" {
		name += "_" + status
	}
	filename := fmt.Sprintf("%s_%s.xlsx", name, now.Format("20060102_1504"))
	utils.LogEvent(s.RequestID, "export", "bookings_xlsx", fmt.Sprintf("rows=%d status=%s", len(list), status))
	return buf.Bytes(), filename, nil
}
