package models

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

var bookingStatuses = []string{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// BookingStatuses lists every status a booking may carry.
func BookingStatuses() []string {
	return append([]string(nil), bookingStatuses...)
}

func ValidBookingStatus(s string) bool {
	for _, v := range bookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Booking is a customer's request to reserve a service at a date/time.
type Booking struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ServiceID    *int64    `json:"service_id"`
	ServiceTitle string    `json:"service_title,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Message      string    `json:"message"`
	Image        string    `json:"image,omitempty"`
	Status       string    `json:"status"`
	UserID       *int64    `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BookingInput is the create/update payload accepted from the booking form.
type BookingInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,loose_email"`
	Phone     string `json:"phone" validate:"required"`
	ServiceID *int64 `json:"service_id" validate:"required"`
	Service   string `json:"service,omitempty"`
	Date      string `json:"date" validate:"required,notpast"`
	Time      string `json:"time" validate:"required,hhmm"`
	Message   string `json:"message"`
	Image     string `json:"image"`
	UserID    *int64 `json:"user_id,omitempty"`
}

// BookingStats feeds the counters on the admin bookings page.
type BookingStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	WithImage int `json:"with_image"`
}

// UploadRate is the share of bookings carrying an uploaded file, in percent.
func (s BookingStats) UploadRate() int {
	if s.Total <= 0 {
		return 0
	}
	return int(float64(s.WithImage)/float64(s.Total)*100 + 0.5)
}
