package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shareit-backend/internal/api"
	"shareit-backend/internal/booking"
	"shareit-backend/internal/clock"
	"shareit-backend/internal/db"
	"shareit-backend/internal/gateway"
	"shareit-backend/internal/item"
	"shareit-backend/internal/mw"
	"shareit-backend/internal/request"
	"shareit-backend/internal/store"
)

type stack struct {
	gateway *gin.Engine
	clock   *clock.Fixed
}

// newStack runs the business server behind a real HTTP listener and returns the
// gateway router pointed at it. Both share one controllable clock.
func newStack(t *testing.T) *stack {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(testDB))

	clk := clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	appStore := store.NewGormStore(testDB)
	handler := api.NewHandler(
		booking.NewService(appStore, appStore, appStore, clk),
		item.NewService(appStore, clk),
		request.NewService(appStore, clk),
		appStore, nil, nil,
	)
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)

	require.NoError(t, gateway.RegisterValidators(clk))
	gw := gateway.NewRouter(
		gateway.NewHandler(gateway.NewClient(server.URL, 5*time.Second)),
		mw.NewIPRateLimiter(rate.Limit(1000), 1000, time.Minute),
	)
	return &stack{gateway: gw, clock: clk}
}

func (s *stack) call(t *testing.T, method, path, userID string, body any) (int, string) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(mw.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	s.gateway.ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

// TestRentalLifecycle walks one rental through the gateway: request, approval,
// usage, review and the owner's view of the item afterwards.
func TestRentalLifecycle(t *testing.T) {
	s := newStack(t)

	code, body := s.call(t, http.MethodPost, "/users", "", gin.H{"name": "owner", "email": "owner@example.com"})
	require.Equal(t, http.StatusCreated, code, body)
	code, body = s.call(t, http.MethodPost, "/users", "", gin.H{"name": "booker", "email": "booker@example.com"})
	require.Equal(t, http.StatusCreated, code, body)
	code, body = s.call(t, http.MethodPost, "/users", "", gin.H{"name": "again", "email": "owner@example.com"})
	assert.Equal(t, http.StatusConflict, code, body)

	code, body = s.call(t, http.MethodPost, "/items", "1", gin.H{"name": "Drill", "description": "Cordless power drill", "available": true})
	require.Equal(t, http.StatusCreated, code, body)

	// Rejected by the gateway: the booking would start in the past.
	code, _ = s.call(t, http.MethodPost, "/bookings", "2", gin.H{"itemId": 1, "start": "2025-06-01T11:00:00", "end": "2025-06-01T14:00:00"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.call(t, http.MethodPost, "/bookings", "2", gin.H{"itemId": 1, "start": "2025-06-01T13:00:00", "end": "2025-06-01T14:00:00"})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Contains(t, body, `"status":"WAITING"`)

	// Rejected by the server: owners cannot book their own items.
	code, body = s.call(t, http.MethodPost, "/bookings", "1", gin.H{"itemId": 1, "start": "2025-06-02T13:00:00", "end": "2025-06-02T14:00:00"})
	assert.Equal(t, http.StatusNotFound, code, body)

	code, body = s.call(t, http.MethodPatch, "/bookings/1?approved=true", "1", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"status":"APPROVED"`)

	code, body = s.call(t, http.MethodPost, "/items/1/comment", "2", gin.H{"text": "Works great"})
	assert.Equal(t, http.StatusBadRequest, code, body)

	s.clock.Set(time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC))

	code, body = s.call(t, http.MethodPost, "/items/1/comment", "2", gin.H{"text": "Works great"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"authorName":"booker"`)

	code, body = s.call(t, http.MethodGet, "/bookings?state=PAST", "2", nil)
	require.Equal(t, http.StatusOK, code, body)
	var past []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &past))
	assert.Len(t, past, 1)

	code, body = s.call(t, http.MethodGet, "/items/1", "1", nil)
	require.Equal(t, http.StatusOK, code, body)
	var details struct {
		LastBooking *struct {
			ID       int64 `json:"id"`
			BookerID int64 `json:"bookerId"`
		} `json:"lastBooking"`
		NextBooking *struct{} `json:"nextBooking"`
		Comments    []struct {
			Text string `json:"text"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &details))
	require.NotNil(t, details.LastBooking)
	assert.Equal(t, int64(1), details.LastBooking.ID)
	assert.Equal(t, int64(2), details.LastBooking.BookerID)
	assert.Nil(t, details.NextBooking)
	require.Len(t, details.Comments, 1)
	assert.Equal(t, "Works great", details.Comments[0].Text)

	// The booker sees the same item without booking windows.
	code, body = s.call(t, http.MethodGet, "/items/1", "2", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"lastBooking":null`)
}

// TestRequestFlow covers a user asking for an item that does not exist yet and an
// owner answering with a new listing, then both accounts going away.
func TestRequestFlow(t *testing.T) {
	s := newStack(t)

	for _, name := range []string{"owner", "seeker"} {
		code, body := s.call(t, http.MethodPost, "/users", "", gin.H{"name": name, "email": name + "@example.com"})
		require.Equal(t, http.StatusCreated, code, body)
	}

	code, _ := s.call(t, http.MethodPost, "/requests", "2", gin.H{"description": " "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := s.call(t, http.MethodPost, "/requests", "2", gin.H{"description": "Need a ladder"})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Contains(t, body, `"created":"2025-06-01T12:00:00"`)

	code, body = s.call(t, http.MethodPost, "/items", "1", gin.H{"name": "Ladder", "description": "Tall", "available": true, "requestId": 9})
	assert.Equal(t, http.StatusNotFound, code, body)

	code, body = s.call(t, http.MethodPost, "/items", "1", gin.H{"name": "Ladder", "description": "Tall", "available": true, "requestId": 1})
	require.Equal(t, http.StatusCreated, code, body)

	code, body = s.call(t, http.MethodGet, "/requests", "2", nil)
	require.Equal(t, http.StatusOK, code, body)
	var own []struct {
		ID    int64 `json:"id"`
		Items []struct {
			Name    string `json:"name"`
			OwnerID int64  `json:"ownerId"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &own))
	require.Len(t, own, 1)
	require.Len(t, own[0].Items, 1)
	assert.Equal(t, "Ladder", own[0].Items[0].Name)
	assert.Equal(t, int64(1), own[0].Items[0].OwnerID)

	code, body = s.call(t, http.MethodGet, "/requests/all?from=0&size=5", "1", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"description":"Need a ladder"`)

	code, _ = s.call(t, http.MethodGet, "/requests/all?size=0", "1", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.call(t, http.MethodGet, "/items/1", "1", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"requestId":1`)

	code, _ = s.call(t, http.MethodDelete, "/items/1", "2", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.call(t, http.MethodDelete, "/users/2", "", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, body = s.call(t, http.MethodGet, "/items/1", "1", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.NotContains(t, body, `"requestId":1`)

	code, _ = s.call(t, http.MethodDelete, "/items/1", "1", nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = s.call(t, http.MethodGet, "/items/1", "1", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
