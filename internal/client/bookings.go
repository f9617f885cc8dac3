package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
)

type BookingsAPI struct{ c *Client }

func (c *Client) Bookings() BookingsAPI { return BookingsAPI{c: c} }

// BookingStats mirrors GET /api/bookings/stats.
type BookingStats struct {
	models.BookingStats
	UploadRate int `json:"upload_rate"`
}

func filterQuery(f domain.ListFilter) string {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Submit sends the public booking form, resolving a service slug to its ID.
func (a BookingsAPI) Submit(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	if in.ServiceID == nil && in.Service != "" {
		if id, ok := models.ServiceIDForSlug(in.Service); ok {
			in.ServiceID = &id
		}
	}
	in.UserID = nil
	return a.Create(ctx, in)
}

func (a BookingsAPI) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	var b models.Booking
	_, err := a.c.do(ctx, http.MethodPost, "/api/bookings", in, &b)
	return b, err
}

func (a BookingsAPI) List(ctx context.Context, f domain.ListFilter) ([]models.Booking, error) {
	var out []models.Booking
	_, err := a.c.do(ctx, http.MethodGet, "/api/bookings"+filterQuery(f), nil, &out)
	return out, err
}

func (a BookingsAPI) Get(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	_, err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/%d", id), nil, &b)
	return b, err
}

func (a BookingsAPI) ByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	var out []models.Booking
	_, err := a.c.do(ctx, http.MethodGet, "/api/bookings/status/"+url.PathEscape(status), nil, &out)
	return out, err
}

func (a BookingsAPI) Stats(ctx context.Context) (BookingStats, error) {
	var st BookingStats
	_, err := a.c.do(ctx, http.MethodGet, "/api/bookings/stats", nil, &st)
	return st, err
}

func (a BookingsAPI) UserBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	_, err := a.c.do(ctx, http.MethodGet, "/api/bookings/user/bookings", nil, &out)
	return out, err
}

func (a BookingsAPI) Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error) {
	var b models.Booking
	_, err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/bookings/%d", id), in, &b)
	return b, err
}

func (a BookingsAPI) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	var b models.Booking
	_, err := a.c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/status", id), map[string]string{"status": status}, &b)
	return b, err
}

func (a BookingsAPI) Confirm(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	_, err := a.c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/confirm", id), nil, &b)
	return b, err
}

func (a BookingsAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", id), nil, nil)
	return err
}

// Confirmation downloads the booking confirmation PDF.
func (a BookingsAPI) Confirmation(ctx context.Context, id int64) ([]byte, string, error) {
	return a.c.download(ctx, fmt.Sprintf("/api/bookings/%d/confirmation", id))
}

func (a BookingsAPI) Quote(ctx context.Context, id int64) ([]byte, string, error) {
	return a.c.download(ctx, fmt.Sprintf("/api/bookings/%d/quote", id))
}

// Export downloads the bookings spreadsheet, optionally for one status.
func (a BookingsAPI) Export(ctx context.Context, status string) ([]byte, string, error) {
	path := "/api/bookings/export"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	return a.c.download(ctx, path)
}
