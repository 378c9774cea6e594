package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/booking"
	"shareit-backend/internal/dto"
	"shareit-backend/internal/mw"
	"shareit-backend/internal/parse"
)

// CreateBooking handles POST /bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.bookings.CreateBooking(c.Request.Context(), req.Start.Time, req.End.Time, req.ItemID, mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBookingResponse(b))
}

// DecideBooking handles PATCH /bookings/:bookingId?approved=true|false.
func (h *Handler) DecideBooking(c *gin.Context) {
	bookingID, err := parse.ID(c.Param("bookingId"), "bookingId")
	if err != nil {
		badRequest(c, err)
		return
	}
	approved, err := parse.Approved(c.Query("approved"))
	if err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.bookings.DecideBooking(c.Request.Context(), bookingID, mw.UserID(c), approved)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.notifier != nil {
		h.notifier.Dispatch(b.ID)
	}
	c.JSON(http.StatusOK, dto.NewBookingResponse(b))
}

// GetBooking handles GET /bookings/:bookingId.
func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, err := parse.ID(c.Param("bookingId"), "bookingId")
	if err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.bookings.GetBooking(c.Request.Context(), bookingID, mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookingResponse(b))
}

// ListBookerBookings handles GET /bookings?state=.
func (h *Handler) ListBookerBookings(c *gin.Context) {
	state, err := booking.ParseState(c.Query("state"))
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.bookings.ListForBooker(c.Request.Context(), mw.UserID(c), state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookingResponses(list))
}

// ListOwnerBookings handles GET /bookings/owner?state=.
func (h *Handler) ListOwnerBookings(c *gin.Context) {
	state, err := booking.ParseState(c.Query("state"))
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.bookings.ListForOwner(c.Request.Context(), mw.UserID(c), state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookingResponses(list))
}
