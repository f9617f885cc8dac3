package services

import (
	"context"
	"testing"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type chanListener chan models.Booking

func (c chanListener) BookingCreated(_ context.Context, b models.Booking) { c <- b }

func TestBookingCreateMapsSlugAndForcesPending(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM services WHERE id = \? LIMIT 1`).WithArgs(int64(2)).WillReturnRows(serviceRow(2, "Videography", 1500))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs("Ava Stone", "ava@example.com", "555-0101", int64(2), "2099-01-01", "10:00", "Brand film", nil, "pending", nil).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(`WHERE b.id = \? LIMIT 1`).WithArgs(int64(11)).WillReturnRows(bookingRow(11, "pending"))

	events := make(chanListener, 1)
	svc := BookingService{DB: db, Listeners: []BookingListener{events}}
	b, err := svc.Create(context.Background(), models.BookingInput{
		Name:    "  Ava Stone ",
		Email:   "ava@example.com",
		Phone:   "555-0101",
		Service: "videography",
		Date:    "2099-01-01",
		Time:    "10:00:00",
		Message: "Brand film",
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), b.ID)
	require.Equal(t, models.BookingPending, b.Status)

	select {
	case got := <-events:
		require.Equal(t, int64(11), got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not notified")
	}
	expectationsMet(t, mock)
}

func TestBookingCreateValidationMessages(t *testing.T) {
	db, mock := newMock(t)
	_, err := BookingService{DB: db}.Create(context.Background(), models.BookingInput{
		Email: "not-an-email",
		Date:  "2000-01-01",
	})
	require.True(t, domain.IsValidation(err), "got %v", err)

	fields := domain.ValidationFields(err)
	require.Equal(t, "Name is required", fields["name"])
	require.Equal(t, "Email is invalid", fields["email"])
	require.Equal(t, "Phone number is required", fields["phone"])
	require.Equal(t, "Please select a service", fields["service_id"])
	require.Equal(t, "Date cannot be in the past", fields["date"])
	require.Equal(t, "Time is required", fields["time"])
	expectationsMet(t, mock)
}

func TestBookingCreateRejectsMissingService(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM services WHERE id = \?`).WithArgs(int64(42)).WillReturnRows(sqlmock.NewRows(serviceCols))

	id := int64(42)
	_, err := BookingService{DB: db}.Create(context.Background(), models.BookingInput{
		Name: "Ava", Email: "a@b.co", Phone: "1", ServiceID: &id, Date: "2099-05-05", Time: "09:00",
	})
	require.True(t, domain.IsValidation(err), "got %v", err)
	require.Contains(t, domain.ValidationFields(err), "service_id")
	expectationsMet(t, mock)
}

func TestBookingUpdateAcceptsPastDate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM services WHERE id = \?`).WithArgs(int64(1)).WillReturnRows(serviceRow(1, "Photography", 800))
	mock.ExpectExec(`UPDATE bookings\s+SET name = \?`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE b.id = \? LIMIT 1`).WithArgs(int64(3)).WillReturnRows(bookingRow(3, "completed"))

	id := int64(1)
	_, err := BookingService{DB: db}.Update(context.Background(), 3, models.BookingInput{
		Name: "Ava", Email: "a@b.co", Phone: "1", ServiceID: &id, Date: "2020-05-05", Time: "09:00",
	})
	require.NoError(t, err)
	expectationsMet(t, mock)
}

func TestBookingUpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	svc := BookingService{DB: db}

	_, err := svc.UpdateStatus(context.Background(), 3, "archived")
	require.True(t, domain.IsValidation(err))

	mock.ExpectExec(`UPDATE bookings SET status = \? WHERE id = \?`).WithArgs("confirmed", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = svc.Confirm(context.Background(), 404)
	require.True(t, domain.IsNotFound(err), "got %v", err)

	mock.ExpectExec(`UPDATE bookings SET status = \? WHERE id = \?`).WithArgs("completed", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE b.id = \? LIMIT 1`).WithArgs(int64(3)).WillReturnRows(bookingRow(3, "completed"))
	b, err := svc.UpdateStatus(context.Background(), 3, " Completed ")
	require.NoError(t, err)
	require.Equal(t, models.BookingCompleted, b.Status)
	expectationsMet(t, mock)
}

func TestBookingByStatusAndUserBookings(t *testing.T) {
	db, mock := newMock(t)
	svc := BookingService{DB: db}

	_, err := svc.ByStatus(context.Background(), "unknown")
	require.True(t, domain.IsValidation(err))

	mock.ExpectQuery(`WHERE b.status = \? ORDER BY`).WithArgs("pending").WillReturnRows(bookingRow(1, "pending"))
	list, err := svc.ByStatus(context.Background(), "pending")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.UserBookings(context.Background(), 0)
	require.True(t, domain.IsUnauthorized(err))

	mock.ExpectQuery(`WHERE b.user_id = \?`).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(bookingCols))
	list, err = svc.UserBookings(context.Background(), 9)
	require.NoError(t, err)
	require.Empty(t, list)
	expectationsMet(t, mock)
}
