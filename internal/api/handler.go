package api

import (
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/booking"
	"shareit-backend/internal/item"
	"shareit-backend/internal/request"
	"shareit-backend/internal/store"
)

// Notifier is told about every decided booking. Dispatch must not block.
type Notifier interface {
	Dispatch(bookingID int64) bool
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	bookings *booking.Service
	items    *item.Service
	requests *request.Service
	store    store.Store
	webpush  *webpush.Options
	notifier Notifier
}

// NewHandler creates a new API handler. webpushOptions and notifier may be nil
// when push notifications are disabled.
func NewHandler(bookings *booking.Service, items *item.Service, requests *request.Service, s store.Store, webpushOptions *webpush.Options, notifier Notifier) *Handler {
	return &Handler{
		bookings: bookings,
		items:    items,
		requests: requests,
		store:    s,
		webpush:  webpushOptions,
		notifier: notifier,
	}
}

// respondError writes err as {"error": msg} with the status of its kind.
// Errors without a kind are logged and reported as 500 without details.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == 0 {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
