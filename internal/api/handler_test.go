package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shareit-backend/internal/booking"
	"shareit-backend/internal/clock"
	"shareit-backend/internal/db"
	"shareit-backend/internal/item"
	"shareit-backend/internal/mw"
	"shareit-backend/internal/request"
	"shareit-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingNotifier struct {
	mu  sync.Mutex
	ids []int64
}

func (n *recordingNotifier) Dispatch(bookingID int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, bookingID)
	return true
}

type testServer struct {
	router   *gin.Engine
	clock    *clock.Fixed
	notifier *recordingNotifier
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupServer(t *testing.T, webpushOptions *webpush.Options) *testServer {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	clk := clock.NewFixed(now)
	notifier := &recordingNotifier{}
	h := NewHandler(booking.NewService(s, s, s, clk), item.NewService(s, clk), request.NewService(s, clk), s, webpushOptions, notifier)

	return &testServer{router: NewRouter(h), clock: clk, notifier: notifier}
}

// do sends a JSON request as userID (0 for no identity header).
func (ts *testServer) do(t *testing.T, method, path string, userID int64, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(mw.UserIDHeader, fmt.Sprint(userID))
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// seed creates users 1 (owner) and 2 (booker) and item 1 owned by user 1.
func (ts *testServer) seed(t *testing.T) {
	w := ts.do(t, http.MethodPost, "/users", 0, gin.H{"name": "owner", "email": "owner@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = ts.do(t, http.MethodPost, "/users", 0, gin.H{"name": "booker", "email": "booker@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = ts.do(t, http.MethodPost, "/items", 1, gin.H{"name": "Drill", "description": "Cordless power drill", "available": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestBookingLifecycle(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)

	w := ts.do(t, http.MethodPost, "/bookings", 2, gin.H{"itemId": 1, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"id": 1, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00", "status": "WAITING",
		"booker": {"id": 2}, "item": {"id": 1, "name": "Drill"}
	}`, w.Body.String())

	w = ts.do(t, http.MethodPatch, "/bookings/1?approved=true", 2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPatch, "/bookings/1?approved=true", 1, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)
	assert.Equal(t, []int64{1}, ts.notifier.ids)

	w = ts.do(t, http.MethodPatch, "/bookings/1?approved=false", 1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []int64{1}, ts.notifier.ids)

	w = ts.do(t, http.MethodGet, "/bookings/1", 1, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/bookings?state=future", 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = ts.do(t, http.MethodGet, "/bookings/owner?state=PAST", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookingErrors(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)

	testCases := []struct {
		name         string
		method       string
		path         string
		userID       int64
		body         any
		expectedCode int
		expectedBody string
	}{
		{
			name: "missing identity header", method: http.MethodGet, path: "/bookings",
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "owner books own item", method: http.MethodPost, path: "/bookings", userID: 1,
			body:         gin.H{"itemId": 1, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"},
			expectedCode: http.StatusNotFound, expectedBody: `{"error":"Owner cannot book own item"}`,
		},
		{
			name: "end before start", method: http.MethodPost, path: "/bookings", userID: 2,
			body:         gin.H{"itemId": 1, "start": "2025-06-03T10:00:00", "end": "2025-06-02T10:00:00"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "missing times", method: http.MethodPost, path: "/bookings", userID: 2,
			body:         gin.H{"itemId": 1},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "malformed time", method: http.MethodPost, path: "/bookings", userID: 2,
			body:         gin.H{"itemId": 1, "start": "tomorrow", "end": "2025-06-02T10:00:00"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "unknown item", method: http.MethodPost, path: "/bookings", userID: 2,
			body:         gin.H{"itemId": 9, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "unknown state", method: http.MethodGet, path: "/bookings?state=UNSUPPORTED_STATUS", userID: 2,
			expectedCode: http.StatusBadRequest, expectedBody: `{"error":"Unknown state: UNSUPPORTED_STATUS"}`,
		},
		{
			name: "missing approved flag", method: http.MethodPatch, path: "/bookings/1", userID: 1,
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "unknown booking", method: http.MethodGet, path: "/bookings/99", userID: 1,
			expectedCode: http.StatusNotFound,
		},
		{
			name: "unknown user lists", method: http.MethodGet, path: "/bookings/owner", userID: 99,
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.do(t, tc.method, tc.path, tc.userID, tc.body)
			assert.Equal(t, tc.expectedCode, w.Code, w.Body.String())
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, w.Body.String())
			}
		})
	}
}

func TestGetBookingHiddenFromStrangers(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)
	w := ts.do(t, http.MethodPost, "/users", 0, gin.H{"name": "stranger", "email": "stranger@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/bookings", 2, gin.H{"itemId": 1, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/bookings/1", 3, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsersAndItems(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)

	w := ts.do(t, http.MethodPost, "/users", 0, gin.H{"name": "dup", "email": "owner@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/users/2", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"name":"booker","email":"booker@example.com"}`, w.Body.String())

	w = ts.do(t, http.MethodPost, "/items", 1, gin.H{"name": "Saw", "description": "Hand saw"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "available is required")

	w = ts.do(t, http.MethodPatch, "/items/1", 2, gin.H{"name": "Mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPatch, "/items/1", 1, gin.H{"available": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Drill","description":"Cordless power drill","available":false}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/items/search?text=drill", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = ts.do(t, http.MethodPost, "/bookings", 2, gin.H{"itemId": 1, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unavailable item")
}

func TestUserPatchAndDelete(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)

	testCases := []struct {
		name         string
		path         string
		body         any
		expectedCode int
		expectedBody string
	}{
		{
			name: "rename", path: "/users/2", body: gin.H{"name": "renamed"},
			expectedCode: http.StatusOK, expectedBody: `{"id":2,"name":"renamed","email":"booker@example.com"}`,
		},
		{
			name: "keep own email", path: "/users/2", body: gin.H{"email": "booker@example.com"},
			expectedCode: http.StatusOK,
		},
		{
			name: "email of another user", path: "/users/2", body: gin.H{"email": "owner@example.com"},
			expectedCode: http.StatusConflict,
		},
		{
			name: "blank name", path: "/users/2", body: gin.H{"name": " "},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "unknown user", path: "/users/99", body: gin.H{"name": "ghost"},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPatch, tc.path, 0, tc.body)
			assert.Equal(t, tc.expectedCode, w.Code, w.Body.String())
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, w.Body.String())
			}
		})
	}

	w := ts.do(t, http.MethodPost, "/bookings", 2, gin.H{"itemId": 1, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodDelete, "/users/1", 0, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodDelete, "/users/1", 0, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/bookings", 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String(), "bookings of the deleted owner's items are gone")
}

func TestDeleteItem(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)

	w := ts.do(t, http.MethodDelete, "/items/1", 2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodDelete, "/items/1", 1, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/items/1", 1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, "/items/1", 1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemRequests(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)

	w := ts.do(t, http.MethodPost, "/requests", 2, gin.H{"description": "Need a ladder"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"description":"Need a ladder","created":"2025-06-01T12:00:00","items":[]}`, w.Body.String())

	w = ts.do(t, http.MethodPost, "/requests", 2, gin.H{"description": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/items", 1, gin.H{"name": "Ladder", "description": "3 m", "available": true, "requestId": 999})
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown request")

	w = ts.do(t, http.MethodPost, "/items", 1, gin.H{"name": "Ladder", "description": "3 m", "available": true, "requestId": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"requestId":1`)

	w = ts.do(t, http.MethodGet, "/requests/1", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1, "description": "Need a ladder", "created": "2025-06-01T12:00:00",
		"items": [{"id": 2, "name": "Ladder", "ownerId": 1}]
	}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/requests", 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var own []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &own))
	assert.Len(t, own, 1)

	w = ts.do(t, http.MethodGet, "/requests/all", 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String(), "own requests are not listed among others")

	w = ts.do(t, http.MethodGet, "/requests/all?from=0&size=5", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var others []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &others))
	assert.Len(t, others, 1)

	w = ts.do(t, http.MethodGet, "/requests/all?size=0", 1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/requests/99", 1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/requests", 0, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "identity header required")
}

func TestItemPageAndComments(t *testing.T) {
	ts := setupServer(t, nil)
	ts.seed(t)

	w := ts.do(t, http.MethodPost, "/bookings", 2, gin.H{"itemId": 1, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(t, http.MethodPatch, "/bookings/1?approved=true", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/items/1", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1, "name": "Drill", "description": "Cordless power drill", "available": true,
		"lastBooking": null,
		"nextBooking": {"id": 1, "bookerId": 2, "start": "2025-06-02T10:00:00", "end": "2025-06-03T10:00:00"},
		"comments": []
	}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/items/1", 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nextBooking":null`)

	w = ts.do(t, http.MethodPost, "/items/1/comment", 2, gin.H{"text": "Great drill"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "booking not finished yet")

	ts.clock.Set(time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	w = ts.do(t, http.MethodPost, "/items/1/comment", 2, gin.H{"text": "Great drill"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"text":"Great drill","authorName":"booker","created":"2025-06-04T00:00:00"}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/items", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.NotNil(t, items[0]["lastBooking"])
	assert.Nil(t, items[0]["nextBooking"])
	assert.Len(t, items[0]["comments"], 1)
}

func TestPushSubscriptions(t *testing.T) {
	ts := setupServer(t, &webpush.Options{VAPIDPublicKey: "public-key"})
	ts.seed(t)

	w := ts.do(t, http.MethodGet, "/push/vapid_public_key", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"public-key"}`, w.Body.String())

	w = ts.do(t, http.MethodPut, "/push/subscriptions", 2, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())

	w = ts.do(t, http.MethodPut, "/push/subscriptions", 2, gin.H{"endpoint": "https://push.example.com/a", "p256dh": "k", "auth": "a"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/push/subscriptions", 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"endpoints":["https://push.example.com/a"]}`, w.Body.String())

	w = ts.do(t, http.MethodDelete, "/push/subscriptions", 2, gin.H{"endpoint": "https://push.example.com/a"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/push/subscriptions", 2, nil)
	assert.JSONEq(t, `{"endpoints":[]}`, w.Body.String())
}

func TestVAPIDKeyDisabled(t *testing.T) {
	ts := setupServer(t, nil)
	w := ts.do(t, http.MethodGet, "/push/vapid_public_key", 0, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
