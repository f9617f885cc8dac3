package services

import (
	"context"
	"testing"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestFeedbackCreateValidation(t *testing.T) {
	db, mock := newMock(t)
	_, err := FeedbackService{DB: db}.Create(context.Background(), models.FeedbackInput{Name: "Li", Email: "li@x.io"})
	require.True(t, domain.IsValidation(err))
	fields := domain.ValidationFields(err)
	require.Equal(t, "Please provide a rating", fields["rating"])
	require.Equal(t, "Please share your feedback", fields["message"])

	_, err = FeedbackService{DB: db}.Create(context.Background(), models.FeedbackInput{Name: "Li", Email: "li@x.io", Rating: 6, Message: "wow"})
	require.Equal(t, "Please provide a rating", domain.ValidationFields(err)["rating"])
	expectationsMet(t, mock)
}

func TestFeedbackCreateStartsPending(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO feedback`).
		WithArgs("Li", "li@x.io", 5, "Stunning work", "drone-services", "pending").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectQuery(`FROM feedback WHERE id = \?`).WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(feedbackCols).AddRow(int64(8), "Li", "li@x.io", 5, "Stunning work", "drone-services", "pending", testNow))

	fb, err := FeedbackService{DB: db}.Create(context.Background(), models.FeedbackInput{
		Name: "Li", Email: "li@x.io", Rating: 5, Message: " Stunning work ", ServiceCategory: "Drone-Services",
	})
	require.NoError(t, err)
	require.Equal(t, models.FeedbackPending, fb.Status)
	expectationsMet(t, mock)
}

func TestFeedbackLimits(t *testing.T) {
	db, mock := newMock(t)
	svc := FeedbackService{DB: db}

	mock.ExpectQuery(`FROM feedback WHERE status = \? ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`).
		WithArgs("approved", 10, 0).WillReturnRows(sqlmock.NewRows(feedbackCols))
	_, err := svc.Approved(context.Background(), 0)
	require.NoError(t, err)

	mock.ExpectQuery(`WHERE status = \? AND service_category = \?`).
		WithArgs("approved", "vfx-post", 200, 0).WillReturnRows(sqlmock.NewRows(feedbackCols))
	_, err = svc.ByCategory(context.Background(), "VFX-Post", 5000)
	require.NoError(t, err)

	mock.ExpectQuery(`FROM feedback ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`).
		WithArgs(50, 0).WillReturnRows(sqlmock.NewRows(feedbackCols))
	_, err = svc.List(context.Background(), domain.ListFilter{Offset: -3})
	require.NoError(t, err)

	_, err = svc.List(context.Background(), domain.ListFilter{Status: "spam"})
	require.True(t, domain.IsValidation(err))
	expectationsMet(t, mock)
}

func TestFeedbackUpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE feedback SET status = \? WHERE id = \?`).WithArgs("approved", int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM feedback WHERE id = \?`).WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(feedbackCols).AddRow(int64(8), "Li", "li@x.io", 5, "ok", "", "approved", testNow))

	fb, err := FeedbackService{DB: db}.UpdateStatus(context.Background(), 8, "approved")
	require.NoError(t, err)
	require.Equal(t, models.FeedbackApproved, fb.Status)
	expectationsMet(t, mock)
}
