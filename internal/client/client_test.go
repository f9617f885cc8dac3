package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, NewMemoryTokenStore())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	})
	_, err := c.Services().List(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)

	require.NoError(t, c.Tokens.Save(Session{Token: "abc"}))
	_, err = c.Services().List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", gotAuth)
}

func TestUnauthorizedClearsSessionAndCallsHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid or expired token"})
	})
	require.NoError(t, c.Tokens.Save(Session{Token: "stale", User: models.PublicUser{ID: 1, Role: "admin"}}))
	redirected := 0
	c.OnUnauthorized = func() { redirected++ }

	_, err := c.Bookings().List(context.Background(), domain.ListFilter{})
	require.True(t, IsStatus(err, http.StatusUnauthorized))
	require.Equal(t, "Invalid or expired token", err.Error())
	require.Equal(t, 1, redirected)

	s, _ := c.Tokens.Load()
	require.Empty(t, s.Token)
	require.Zero(t, s.User.ID)
}

func TestAPIErrorCarriesServerMessageAndDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Email is invalid",
			"code":    "validation_error",
			"details": map[string]string{"email": "Email is invalid"},
		})
	})
	_, err := c.Feedback().Submit(context.Background(), models.FeedbackInput{Email: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Email is invalid", apiErr.Details["email"])
}

func TestSubmitMapsServiceSlug(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bookings", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": 5, "status": "pending"}})
	})
	uid := int64(9)
	b, err := c.Bookings().Submit(context.Background(), models.BookingInput{
		Name: "Ava", Email: "a@b.co", Phone: "1", Service: "post-production", Date: "2099-01-01", Time: "10:00", UserID: &uid,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), b.ID)
	require.Equal(t, float64(3), got["service_id"])
	require.Nil(t, got["user_id"])
}

func TestListSendsFilterQuery(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	})
	_, err := c.Feedback().List(context.Background(), domain.ListFilter{Status: "pending", Limit: 20, Offset: 40})
	require.NoError(t, err)
	require.Equal(t, "limit=20&offset=40&status=pending", query)
}

func TestLoginStoresSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{
			"token": "jwt-token",
			"user":  map[string]any{"id": 1, "email": "admin@cinecraft.test", "role": "admin"},
		}})
	})
	s, err := c.Auth().Login(context.Background(), "admin@cinecraft.test", "secret")
	require.NoError(t, err)
	require.Equal(t, "jwt-token", s.Token)
	require.True(t, c.Auth().LoggedIn())

	require.NoError(t, c.Auth().Logout())
	require.False(t, c.Auth().LoggedIn())
}

func TestDownloadUsesContentDisposition(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="BOOKING_7_Ava.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.3"))
	})
	data, name, err := c.Bookings().Confirmation(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "BOOKING_7_Ava.pdf", name)
	require.Equal(t, "%PDF-1.3", string(data))
}

type progressLog struct {
	mu     sync.Mutex
	values []int
}

func (p *progressLog) add(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, v)
}

func (p *progressLog) last() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.values) == 0 {
		return -1
	}
	return p.values[len(p.values)-1]
}

func TestUploadSingleReportsProgress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		require.Equal(t, "hello", string(body))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "url": "http://x/uploads/a.txt",
			"data": map[string]any{"public_id": "uploads/a.txt", "url": "http://x/uploads/a.txt", "original_name": fh.Filename}})
	})
	var log progressLog
	st, err := c.Upload().Single(context.Background(), File{Name: "a.txt", Body: strings.NewReader("hello")}, log.add)
	require.NoError(t, err)
	require.Equal(t, "uploads/a.txt", st.PublicID)
	require.Equal(t, 100, log.last())
}

func TestUploadFailureResetsProgress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "File size must be less than 50MB"})
	})
	var log progressLog
	_, err := c.Upload().Image(context.Background(), File{Name: "big.png", Body: strings.NewReader("x")}, log.add)
	require.Error(t, err)
	require.Equal(t, "File size must be less than 50MB", err.Error())
	require.Equal(t, 0, log.last())
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := &FileTokenStore{Path: path}

	s, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, s.Token)

	require.NoError(t, store.Save(Session{Token: "tok", User: models.PublicUser{ID: 2, Name: "Admin"}}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	s, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok", s.Token)
	require.Equal(t, "Admin", s.User.Name)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}
