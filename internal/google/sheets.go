// Package google mirrors bookings into a Google Sheets spreadsheet so the
// studio can work the pipeline from a shared sheet.
package google

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/utils"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	bookingsSheet = "Bookings"
	lastColumn    = "K"
	statusColumn  = "H"
)

var bookingHeaders = []interface{}{"ID", "Name", "Email", "Phone", "Service", "Date", "Time", "Status", "Message", "Attachment", "Created At"}

type BookingSheet struct {
	service       *sheets.Service
	spreadsheetID string

	mu       sync.Mutex
	rowCache map[int64]int
}

// NewBookingSheet authenticates with a service-account JSON key.
func NewBookingSheet(ctx context.Context, credentialsFile, spreadsheetID string) (*BookingSheet, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return NewBookingSheetWithService(srv, spreadsheetID), nil
}

func NewBookingSheetWithService(srv *sheets.Service, spreadsheetID string) *BookingSheet {
	return &BookingSheet{service: srv, spreadsheetID: spreadsheetID, rowCache: map[int64]int{}}
}

func (s *BookingSheet) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, bookingsSheet+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

func bookingRow(b models.Booking) []interface{} {
	return []interface{}{
		b.ID,
		b.Name,
		b.Email,
		b.Phone,
		b.ServiceTitle,
		b.Date,
		b.Time,
		b.Status,
		b.Message,
		b.Image,
		utils.FormatDateTime(b.CreatedAt),
	}
}

// WarmUpCache reads the ID column so later status updates can find rows.
func (s *BookingSheet) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, bookingsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rowCache = map[int64]int{}
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(fmt.Sprint(row[0])), 10, 64)
		if err != nil {
			continue
		}
		s.rowCache[id] = i + 1
	}
	return nil
}

func (s *BookingSheet) cachedRow(id int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *BookingSheet) AppendBooking(ctx context.Context, b models.Booking) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{bookingRow(b)}}
	resp, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, bookingsSheet+"!A:A", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return err
	}
	if resp.Updates != nil {
		if row := rowFromRange(resp.Updates.UpdatedRange); row > 0 {
			s.mu.Lock()
			s.rowCache[b.ID] = row
			s.mu.Unlock()
		}
	}
	return nil
}

// UpdateStatus rewrites the status cell of an already mirrored booking.
func (s *BookingSheet) UpdateStatus(ctx context.Context, id int64, status string) error {
	row, ok := s.cachedRow(id)
	if !ok {
		return fmt.Errorf("booking %d not found in sheet", id)
	}
	cell := fmt.Sprintf("%s!%s%d:%s%d", bookingsSheet, statusColumn, row, statusColumn, row)
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, cell, &sheets.ValueRange{
		Values: [][]interface{}{{status}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// ReplaceAll overwrites the sheet with a header row plus bookings.
func (s *BookingSheet) ReplaceAll(ctx context.Context, bookings []models.Booking) error {
	values := [][]interface{}{bookingHeaders}
	for _, b := range bookings {
		values = append(values, bookingRow(b))
	}
	rangeData := fmt.Sprintf("%s!A1:%s%d", bookingsSheet, lastColumn, len(values))
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rowCache = map[int64]int{}
	for i, b := range bookings {
		s.rowCache[b.ID] = i + 2
	}
	s.mu.Unlock()
	return nil
}

func (s *BookingSheet) BookingCreated(ctx context.Context, b models.Booking) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.AppendBooking(ctx, b); err != nil {
		utils.LogError("", "sheets", "append_booking", err)
	}
}

func (s *BookingSheet) BookingStatusChanged(ctx context.Context, id int64, status string) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.UpdateStatus(ctx, id, status); err != nil {
		utils.LogError("", "sheets", "update_status", err)
	}
}

// rowFromRange extracts the first row number from "Bookings!A10:K10".
func rowFromRange(r string) int {
	if i := strings.LastIndex(r, "!"); i >= 0 {
		r = r[i+1:]
	}
	if i := strings.IndexByte(r, ':'); i >= 0 {
		r = r[:i]
	}
	r = strings.TrimLeft(r, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	n, err := strconv.Atoi(r)
	if err != nil {
		return 0
	}
	return n
}
