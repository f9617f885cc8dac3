package services

import (
	"context"
	"testing"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestContentGetAndUpdate(t *testing.T) {
	db, mock := newMock(t)
	svc := ContentService{DB: db}
	cols := []string{"content_key", "content_value", "updated_at"}

	mock.ExpectQuery(`FROM site_content`).WillReturnRows(sqlmock.NewRows(cols).
		AddRow("hero_headline", "Stories in motion", testNow))
	c, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Stories in motion", c.HeroHeadline)
	require.Equal(t, "", c.ContactEmail)
	require.Equal(t, testNow, c.UpdatedAt)

	_, err = svc.Update(context.Background(), models.SiteContent{ContactEmail: "broken"})
	require.True(t, domain.IsValidation(err))

	mock.ExpectBegin()
	for range models.ContentKeys {
		mock.ExpectExec(`INSERT INTO site_content`).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
	mock.ExpectQuery(`FROM site_content`).WillReturnRows(sqlmock.NewRows(cols).
		AddRow("contact_email", "hello@cinecraft.media", testNow))
	c, err = svc.Update(context.Background(), models.SiteContent{ContactEmail: " hello@cinecraft.media "})
	require.NoError(t, err)
	require.Equal(t, "hello@cinecraft.media", c.ContactEmail)
	expectationsMet(t, mock)
}
