package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "cinecraft/internal/config"
	h "cinecraft/internal/http/handlers"
	"cinecraft/internal/notify"
	"cinecraft/internal/upload"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var (
	testSecret  = []byte("router-test-secret")
	testNow     = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	bookingCols = []string{"id", "name", "email", "phone", "service_id", "title", "booking_date", "booking_time",
		"message", "image", "status", "user_id", "created_at", "updated_at"}
	serviceCols = []string{"id", "title", "description", "price", "duration", "category", "image", "features",
		"created_at", "updated_at"}
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
	URL     string            `json:"url"`
	Data    json.RawMessage   `json:"data"`
}

func newTestRouter(t *testing.T, d h.Deps) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		h.Setup(h.Deps{})
	})
	d.DB = db
	d.JWTSecret = testSecret
	h.Setup(d)

	return NewRouter(intconfig.Env{CORSOrigins: []string{"http://localhost:3000"}}), mock
}

func tokenFor(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, h.Deps{})
	w := do(r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"OK"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t, h.Deps{})
	w := do(r, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Route not found", decode(t, w).Message)
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	r, mock := newTestRouter(t, h.Deps{})

	w := do(r, http.MethodGet, "/api/bookings", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "unauthorized", decode(t, w).Code)

	w = do(r, http.MethodGet, "/api/bookings", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/bookings", tokenFor(t, 7, "user"), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	mock.ExpectQuery(`FROM bookings b`).WillReturnRows(sqlmock.NewRows(bookingCols).
		AddRow(int64(3), "Ava Stone", "ava@example.com", "555-0101", int64(2), "Videography", "2099-01-01", "10:00",
			"", "", "pending", nil, testNow, testNow))
	w = do(r, http.MethodGet, "/api/bookings", tokenFor(t, 1, "admin"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	require.True(t, env.Success)
	require.Contains(t, string(env.Data), `"name":"Ava Stone"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingValidationDetails(t *testing.T) {
	r, mock := newTestRouter(t, h.Deps{})
	w := do(r, http.MethodPost, "/api/bookings", "", map[string]any{"email": "nope", "date": "2000-01-01"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode(t, w)
	require.False(t, env.Success)
	require.Equal(t, "validation_error", env.Code)
	require.Equal(t, "Email is invalid", env.Details["email"])
	require.Equal(t, "Date cannot be in the past", env.Details["date"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingAcceptsStringServiceID(t *testing.T) {
	r, mock := newTestRouter(t, h.Deps{})
	mock.ExpectQuery(`FROM services WHERE id = \?`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(serviceCols).AddRow(int64(2), "Videography", "", 1500.0, "", "video", "", "[]", testNow, testNow))
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery(`WHERE b.id = \? LIMIT 1`).WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(int64(12), "Ava Stone", "ava@example.com", "555-0101", int64(2),
			"Videography", "2099-01-01", "10:00", "", "", "pending", nil, testNow, testNow))

	w := do(r, http.MethodPost, "/api/bookings", "", map[string]any{
		"name": "Ava Stone", "email": "ava@example.com", "phone": "555-0101",
		"service_id": "2", "date": "2099-01-01", "time": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	require.Equal(t, "Booking submitted successfully", env.Message)
	require.Contains(t, string(env.Data), `"status":"pending"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingNotFound(t *testing.T) {
	r, mock := newTestRouter(t, h.Deps{})
	mock.ExpectQuery(`WHERE b.id = \? LIMIT 1`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	w := do(r, http.MethodGet, "/api/bookings/99", tokenFor(t, 1, "admin"), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "not_found", decode(t, w).Code)

	w = do(r, http.MethodGet, "/api/bookings/abc", tokenFor(t, 1, "admin"), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmptyBodyRejected(t *testing.T) {
	r, _ := newTestRouter(t, h.Deps{})
	w := do(r, http.MethodPost, "/api/feedback", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Request body is empty", decode(t, w).Message)
}

func TestUploadSingleAndDelete(t *testing.T) {
	store, err := upload.NewLocalStorage(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)
	r, _ := newTestRouter(t, h.Deps{Storage: store})

	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	w := postFile(t, r, "/api/upload/single", "", "file", "still.png", png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	require.True(t, strings.HasPrefix(env.URL, "http://localhost:5000/uploads/uploads/"), env.URL)
	var stored upload.Stored
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	require.Equal(t, "image/png", stored.ContentType)

	w = do(r, http.MethodDelete, "/api/upload/"+stored.PublicID, tokenFor(t, 1, "admin"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodDelete, "/api/upload/"+stored.PublicID, tokenFor(t, 1, "admin"), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func postFile(t *testing.T, r http.Handler, path, token, field, name string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, _ = fw.Write(body)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookingAttachmentAcceptsDocuments(t *testing.T) {
	store, err := upload.NewLocalStorage(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)
	r, _ := newTestRouter(t, h.Deps{Storage: store})
	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

	for _, route := range []struct{ path, field string }{
		{"/api/upload/single", "file"},
		{"/api/upload/image", "image"},
	} {
		w := postFile(t, r, route.path, "", route.field, "brief.pdf", pdf)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", route.path, w.Body.String())
		var stored upload.Stored
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &stored))
		require.Equal(t, "application/pdf", stored.ContentType)
		require.Equal(t, "PDF", stored.FileType)
	}

	w := postFile(t, r, "/api/upload/single", "", "file", "notes.txt", []byte("shot list: drone, interviews\n"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postFile(t, r, "/api/services/upload-image", tokenFor(t, 1, "admin"), "image", "brief.pdf", pdf)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode(t, w).Details["file"], "application/pdf is not allowed")
}

func TestUploadWithoutFile(t *testing.T) {
	store, err := upload.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	r, _ := newTestRouter(t, h.Deps{Storage: store})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "No file uploaded", decode(t, w).Message)
}

func TestRoutesListed(t *testing.T) {
	r, _ := newTestRouter(t, h.Deps{})
	w := do(r, http.MethodGet, "/api/routes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, path := range []string{"/api/bookings/:id/confirmation", "/api/notifications/ws", "/metrics"} {
		require.Contains(t, w.Body.String(), path)
	}
}

type notificationFeed struct {
	Notifications []notify.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
	LastChecked   *time.Time            `json:"last_checked"`
}

func TestNotificationRoutes(t *testing.T) {
	store := notify.NewMemoryCheckpointStore()
	r, mock := newTestRouter(t, h.Deps{Checkpoints: store})
	ctx := context.Background()
	admin := tokenFor(t, 1, "admin")
	require.NoError(t, store.Save(ctx, "user:1", testNow))

	w := do(r, http.MethodGet, "/api/notifications", tokenFor(t, 7, "user"), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = do(r, http.MethodGet, "/api/notifications", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	mock.ExpectQuery(`WHERE b.created_at > \? AND b.status = \?`).WithArgs(testNow, "pending").
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(int64(21), "Lena Park", "lena@example.com", "555-0111",
			int64(1), "Photography", "2099-02-01", "09:00", "", "", "pending", nil, testNow.Add(time.Minute), testNow))
	w = do(r, http.MethodGet, "/api/notifications", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, key := range []string{`"notifications"`, `"unread_count"`, `"last_checked"`} {
		require.Contains(t, string(decode(t, w).Data), key)
	}
	var feed notificationFeed
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &feed))
	require.Len(t, feed.Notifications, 1)
	require.Equal(t, "booking_21", feed.Notifications[0].ID)
	require.Equal(t, "Lena Park requested Photography", feed.Notifications[0].Message)
	require.Equal(t, 1, feed.UnreadCount)
	require.NotNil(t, feed.LastChecked)
	require.True(t, feed.LastChecked.Equal(testNow))

	w = do(r, http.MethodPost, "/api/notifications/read", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Notifications marked as read", decode(t, w).Message)
	read, err := store.Load(ctx, "user:1")
	require.NoError(t, err)
	require.True(t, read.After(testNow))

	w = do(r, http.MethodDelete, "/api/notifications", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Notifications cleared", decode(t, w).Message)
	cleared, err := store.Load(ctx, "user:1")
	require.NoError(t, err)
	require.False(t, cleared.Before(read))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsStartEmptyWithoutCheckpoint(t *testing.T) {
	store := notify.NewMemoryCheckpointStore()
	r, mock := newTestRouter(t, h.Deps{Checkpoints: store})

	w := do(r, http.MethodGet, "/api/notifications", tokenFor(t, 2, "admin"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var feed notificationFeed
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &feed))
	require.NotNil(t, feed.Notifications)
	require.Empty(t, feed.Notifications)
	require.Equal(t, 0, feed.UnreadCount)
	require.NotNil(t, feed.LastChecked)

	saved, err := store.Load(context.Background(), "user:2")
	require.NoError(t, err)
	require.False(t, saved.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsWebsocketTokenQuery(t *testing.T) {
	hub := notify.NewHub()
	r, _ := newTestRouter(t, h.Deps{Hub: hub})
	srv := httptest.NewServer(r)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/notifications/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL+"?token="+tokenFor(t, 7, "user"), nil)
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+tokenFor(t, 1, "admin"), nil)
	require.NoError(t, err)
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, hub.Count())
}
