package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var (
	testNow     = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	bookingCols = []string{"id", "name", "email", "phone", "service_id", "title", "booking_date", "booking_time",
		"message", "image", "status", "user_id", "created_at", "updated_at"}
	serviceCols = []string{"id", "title", "description", "price", "duration", "category", "image", "features",
		"created_at", "updated_at"}
	feedbackCols = []string{"id", "name", "email", "rating", "message", "service_category", "status", "created_at"}
	userCols     = []string{"id", "name", "email", "password_hash", "role", "status", "created_at", "updated_at"}
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func serviceRow(id int64, title string, price float64) *sqlmock.Rows {
	return sqlmock.NewRows(serviceCols).
		AddRow(id, title, title+" description", price, "4 hours", "video", "", `["Editing"]`, testNow, testNow)
}

func bookingRow(id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).
		AddRow(id, "Ava Stone", "ava@example.com", "555-0101", int64(2), "Videography", "2099-01-01", "10:00",
			"Brand film", "", status, nil, testNow, testNow)
}
