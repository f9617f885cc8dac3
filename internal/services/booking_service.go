package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/metrics"
	"cinecraft/internal/repositories"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"
)

// BookingListener is told about every accepted booking request.
type BookingListener interface {
	BookingCreated(ctx context.Context, b models.Booking)
}

// BookingStatusListener is told about status changes made by admins.
type BookingStatusListener interface {
	BookingStatusChanged(ctx context.Context, id int64, status string)
}

type BookingService struct {
	BookingRepo     repositories.BookingRepository
	ServiceRepo     repositories.ServiceRepository
	DB              *sql.DB
	Listeners       []BookingListener
	StatusListeners []BookingStatusListener
	RequestID       string
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: pickDB(s.DB)}
}

func (s BookingService) services() repositories.ServiceRepository {
	if s.ServiceRepo.DB != nil {
		return s.ServiceRepo
	}
	return repositories.ServiceRepository{DB: pickDB(s.DB)}
}

func normalizeBookingInput(in models.BookingInput) models.BookingInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Message = strings.TrimSpace(in.Message)
	in.Image = strings.TrimSpace(in.Image)
	if in.ServiceID != nil && *in.ServiceID <= 0 {
		in.ServiceID = nil
	}
	if in.ServiceID == nil && in.Service != "" {
		if id, ok := models.ServiceIDForSlug(in.Service); ok {
			in.ServiceID = &id
		}
	}
	if len(in.Time) == 8 && strings.Count(in.Time, ":") == 2 {
		in.Time = in.Time[:5]
	}
	return in
}

func (s BookingService) ensureService(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.services().Get(ctx, *id); err != nil {
		if wrapped := wrapRepoErr("service", err); domain.IsNotFound(wrapped) {
			return fieldError("service_id", "Selected service is not available")
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

// Create stores a visitor's booking request. Status always starts pending.
func (s BookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	in = normalizeBookingInput(in)
	if err := validation.Validate(in); err != nil {
		return models.Booking{}, err
	}
	if err := s.ensureService(ctx, in.ServiceID); err != nil {
		return models.Booking{}, err
	}

	id, err := s.bookings().Create(ctx, in, models.BookingPending)
	if err != nil {
		return models.Booking{}, wrapRepoErr("booking", err)
	}
	b, err := s.bookings().Get(ctx, id)
	if err != nil {
		return models.Booking{}, wrapRepoErr("booking", err)
	}

	metrics.BookingsCreated.Inc()
	utils.LogEvent(s.RequestID, "bookings", "create", fmt.Sprintf("booking_id=%d service_id=%v date=%s", b.ID, derefID(b.ServiceID), b.Date))
	s.fireCreated(ctx, b)
	return b, nil
}

func (s BookingService) fireCreated(ctx context.Context, b models.Booking) {
	if len(s.Listeners) == 0 {
		return
	}
	bg := context.WithoutCancel(ctx)
	for _, l := range s.Listeners {
		go func(l BookingListener) {
			lctx, cancel := context.WithTimeout(bg, 30*time.Second)
			defer cancel()
			l.BookingCreated(lctx, b)
		}(l)
	}
}

func (s BookingService) fireStatus(ctx context.Context, id int64, status string) {
	metrics.BookingStatusChanges.WithLabelValues(status).Inc()
	bg := context.WithoutCancel(ctx)
	for _, l := range s.StatusListeners {
		go func(l BookingStatusListener) {
			lctx, cancel := context.WithTimeout(bg, 30*time.Second)
			defer cancel()
			l.BookingStatusChanged(lctx, id, status)
		}(l)
	}
}

// List returns bookings for the admin table; Limit 0 means all.
func (s BookingService) List(ctx context.Context, f domain.ListFilter) ([]models.Booking, error) {
	if f.Status != "" && !models.ValidBookingStatus(f.Status) {
		return nil, fieldError("status", "Invalid booking status")
	}
	if f.Limit > domain.MaxLimit {
		f.Limit = domain.MaxLimit
	}
	list, err := s.bookings().List(ctx, f)
	if err != nil {
		return nil, wrapRepoErr("booking", err)
	}
	return list, nil
}

func (s BookingService) ByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidBookingStatus(status) {
		return nil, fieldError("status", "Invalid booking status")
	}
	return s.List(ctx, domain.ListFilter{Status: status})
}

func (s BookingService) Get(ctx context.Context, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fieldError("id", "invalid id")
	}
	b, err := s.bookings().Get(ctx, id)
	if err != nil {
		return models.Booking{}, wrapRepoErr("booking", err)
	}
	return b, nil
}

func (s BookingService) UserBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.UnauthorizedError{Msg: "login required"}
	}
	list, err := s.bookings().ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapRepoErr("booking", err)
	}
	return list, nil
}

// PendingSince feeds the notification bell.
func (s BookingService) PendingSince(ctx context.Context, since time.Time) ([]models.Booking, error) {
	list, err := s.bookings().CreatedAfter(ctx, since, models.BookingPending)
	if err != nil {
		return nil, wrapRepoErr("booking", err)
	}
	return list, nil
}

func (s BookingService) Stats(ctx context.Context) (models.BookingStats, error) {
	st, err := s.bookings().Stats(ctx)
	if err != nil {
		return st, wrapRepoErr("booking", err)
	}
	return st, nil
}

// Update replaces the editable fields. Past dates are accepted here.
func (s BookingService) Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fieldError("id", "invalid id")
	}
	in = normalizeBookingInput(in)
	if err := allowPastDate(validation.Validate(in)); err != nil {
		return models.Booking{}, err
	}
	if err := s.ensureService(ctx, in.ServiceID); err != nil {
		return models.Booking{}, err
	}
	if err := s.bookings().Update(ctx, id, in); err != nil {
		return models.Booking{}, wrapRepoErr("booking", err)
	}
	utils.LogEvent(s.RequestID, "bookings", "update", fmt.Sprintf("booking_id=%d", id))
	return s.Get(ctx, id)
}

func (s BookingService) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidBookingStatus(status) {
		return models.Booking{}, fieldError("status", "Invalid booking status")
	}
	if id <= 0 {
		return models.Booking{}, fieldError("id", "invalid id")
	}
	if err := s.bookings().UpdateStatus(ctx, id, status); err != nil {
		return models.Booking{}, wrapRepoErr("booking", err)
	}
	utils.LogEvent(s.RequestID, "bookings", "update_status", fmt.Sprintf("booking_id=%d status=%s", id, status))
	s.fireStatus(ctx, id, status)
	return s.Get(ctx, id)
}

func (s BookingService) Confirm(ctx context.Context, id int64) (models.Booking, error) {
	return s.UpdateStatus(ctx, id, models.BookingConfirmed)
}

func (s BookingService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fieldError("id", "invalid id")
	}
	if err := s.bookings().Delete(ctx, id); err != nil {
		return wrapRepoErr("booking", err)
	}
	utils.LogEvent(s.RequestID, "bookings", "delete", fmt.Sprintf("booking_id=%d", id))
	return nil
}

func derefID(p *int64) any {
	if p == nil {
		return "none"
	}
	return *p
}
