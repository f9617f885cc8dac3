package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinecraft/internal/domain/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestBookingSheetWithMockAPI(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx := context.Background()
	srv, err := sheets.NewService(ctx, option.WithEndpoint(server.URL), option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	s := NewBookingSheetWithService(srv, "bookings_tid")

	t.Run("TestConnection", func(t *testing.T) {
		mux.HandleFunc("/v4/spreadsheets/bookings_tid/values/Bookings!A1", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}}})
		})
		if err := s.TestConnection(ctx); err != nil {
			t.Fatalf("TestConnection failed: %v", err)
		}
	})

	t.Run("WarmUpCache", func(t *testing.T) {
		mux.HandleFunc("/v4/spreadsheets/bookings_tid/values/Bookings!A:A", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}, {"12"}, {}, {"40"}}})
		})
		if err := s.WarmUpCache(ctx); err != nil {
			t.Fatalf("WarmUpCache failed: %v", err)
		}
		if row, ok := s.cachedRow(40); !ok || row != 4 {
			t.Fatalf("expected row 4 for booking 40, got %d", row)
		}
	})

	t.Run("AppendBooking", func(t *testing.T) {
		mux.HandleFunc("/v4/spreadsheets/bookings_tid/values/Bookings!A:A:append", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(sheets.AppendValuesResponse{
				Updates: &sheets.UpdateValuesResponse{UpdatedRange: "Bookings!A9:K9"},
			})
		})
		b := models.Booking{ID: 77, Name: "Ana", Status: models.BookingPending, CreatedAt: time.Now()}
		if err := s.AppendBooking(ctx, b); err != nil {
			t.Fatalf("AppendBooking failed: %v", err)
		}
		if row, _ := s.cachedRow(77); row != 9 {
			t.Fatalf("expected cached row 9, got %d", row)
		}
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		called := false
		mux.HandleFunc("/v4/spreadsheets/bookings_tid/values/Bookings!H9:H9", func(w http.ResponseWriter, r *http.Request) {
			called = true
			json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})
		})
		if err := s.UpdateStatus(ctx, 77, models.BookingConfirmed); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		if !called {
			t.Fatal("expected status cell update")
		}
		if err := s.UpdateStatus(ctx, 999, models.BookingConfirmed); err == nil {
			t.Fatal("expected error for unknown booking")
		}
	})
}

func TestRowFromRange(t *testing.T) {
	cases := map[string]int{
		"Bookings!A10:K10": 10,
		"Bookings!A2":      2,
		"garbage":          0,
	}
	for in, want := range cases {
		if got := rowFromRange(in); got != want {
			t.Fatalf("rowFromRange(%q)=%d want %d", in, got, want)
		}
	}
}
