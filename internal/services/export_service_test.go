package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportBookingsXLSX(t *testing.T) {
	var gotFilter domain.ListFilter
	svc := ExportService{
		Lister: func(_ context.Context, f domain.ListFilter) ([]models.Booking, error) {
			gotFilter = f
			return []models.Booking{
				{ID: 1, Name: "Ava", Email: "ava@x.io", ServiceTitle: "Videography", Date: "2026-06-01", Time: "10:00",
					Status: models.BookingConfirmed, Image: "https://cdn/brief.pdf", CreatedAt: testNow},
				{ID: 2, Name: "Ben", Status: models.BookingConfirmed, CreatedAt: testNow},
			}, nil
		},
		Now: func() time.Time { return testNow },
	}

	raw, filename, err := svc.BookingsXLSX(context.Background(), models.BookingConfirmed)
	require.NoError(t, err)
	require.Equal(t, "bookings_confirmed_20260310_0930.xlsx", filename)
	require.Equal(t, models.BookingConfirmed, gotFilter.Status)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "ID", rows[0][0])
	require.Equal(t, "Ava", rows[1][1])
	require.Equal(t, "PDF", rows[1][10])

	_, _, err = svc.BookingsXLSX(context.Background(), "bogus")
	require.True(t, domain.IsValidation(err))
}
