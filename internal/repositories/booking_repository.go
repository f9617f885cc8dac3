package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intdb "cinecraft/internal/db"
	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingSelect = `
	SELECT b.id, b.name, b.email, b.phone, b.service_id, COALESCE(s.title,''),
		DATE_FORMAT(b.booking_date, '%Y-%m-%d'), b.booking_time, COALESCE(b.message,''),
		COALESCE(b.image,''), b.status, b.user_id, b.created_at, b.updated_at
	FROM bookings b
	LEFT JOIN services s ON s.id = b.service_id`

func scanBooking(s scanner) (models.Booking, error) {
	var (
		out       models.Booking
		serviceID sql.NullInt64
		userID    sql.NullInt64
	)
	if err := s.Scan(&out.ID, &out.Name, &out.Email, &out.Phone, &serviceID, &out.ServiceTitle,
		&out.Date, &out.Time, &out.Message, &out.Image, &out.Status, &userID,
		&out.CreatedAt, &out.UpdatedAt); err != nil {
		return out, err
	}
	out.ServiceID = ptrInt(serviceID)
	out.UserID = ptrInt(userID)
	return out, nil
}

func (r BookingRepository) query(ctx context.Context, q string, args ...any) ([]models.Booking, error) {
	rows, err := pick(r.DB).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// List returns bookings newest first. Query matches name, email or phone.
func (r BookingRepository) List(ctx context.Context, f domain.ListFilter) ([]models.Booking, error) {
	clauses := []string{}
	args := []any{}
	if f.Status != "" {
		clauses = append(clauses, "b.status = ?")
		args = append(args, f.Status)
	}
	if f.Query != "" {
		clauses = append(clauses, "(b.name LIKE ? OR b.email LIKE ? OR b.phone LIKE ?)")
		like := likeArg(f.Query)
		args = append(args, like, like, like)
	}
	limit, args := paginate(f, args)
	return r.query(ctx, bookingSelect+where(clauses)+" ORDER BY b.created_at DESC, b.id DESC"+limit, args...)
}

// ListByUser returns the bookings submitted by an authenticated user.
func (r BookingRepository) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return r.query(ctx, bookingSelect+" WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC", userID)
}

// CreatedAfter returns bookings with the given status created strictly after since.
func (r BookingRepository) CreatedAfter(ctx context.Context, since time.Time, status string) ([]models.Booking, error) {
	return r.query(ctx, bookingSelect+" WHERE b.created_at > ? AND b.status = ? ORDER BY b.created_at DESC, b.id DESC", since, status)
}

func (r BookingRepository) Get(ctx context.Context, id int64) (models.Booking, error) {
	b, err := scanBooking(pick(r.DB).QueryRowContext(ctx, bookingSelect+" WHERE b.id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

func (r BookingRepository) Create(ctx context.Context, in models.BookingInput, status string) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO bookings (name, email, phone, service_id, booking_date, booking_time, message, image, status, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Email, in.Phone, nullInt(in.ServiceID), in.Date, in.Time,
		intdb.NullIfEmpty(in.Message), intdb.NullIfEmpty(in.Image), status, nullInt(in.UserID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the editable fields; status is left to UpdateStatus.
func (r BookingRepository) Update(ctx context.Context, id int64, in models.BookingInput) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `
		UPDATE bookings
		SET name = ?, email = ?, phone = ?, service_id = ?, booking_date = ?, booking_time = ?, message = ?, image = ?
		WHERE id = ?
	`, in.Name, in.Email, in.Phone, nullInt(in.ServiceID), in.Date, in.Time,
		intdb.NullIfEmpty(in.Message), intdb.NullIfEmpty(in.Image), id))
}

func (r BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id))
}

func (r BookingRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id))
}

func (r BookingRepository) Stats(ctx context.Context) (models.BookingStats, error) {
	var s models.BookingStats
	err := pick(r.DB).QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(status = 'pending'), 0),
			COALESCE(SUM(status = 'confirmed'), 0),
			COALESCE(SUM(status = 'completed'), 0),
			COALESCE(SUM(status = 'cancelled'), 0),
			COALESCE(SUM(image IS NOT NULL AND image <> ''), 0)
		FROM bookings
	`).Scan(&s.Total, &s.Pending, &s.Confirmed, &s.Completed, &s.Cancelled, &s.WithImage)
	return s, err
}
