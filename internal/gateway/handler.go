package gateway

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"shareit-backend/internal/booking"
	"shareit-backend/internal/parse"
)

// Forwarder sends a request on to the business server.
type Forwarder interface {
	Forward(ctx context.Context, method, path, rawQuery string, header http.Header, body []byte) (*Response, error)
}

// Handler validates incoming requests and relays the valid ones.
type Handler struct {
	upstream Forwarder
}

// NewHandler creates a gateway handler.
func NewHandler(upstream Forwarder) *Handler {
	return &Handler{upstream: upstream}
}

// Relay forwards the request as it is and copies the server response back.
func (h *Handler) Relay(c *gin.Context) {
	h.relay(c, nil)
}

func (h *Handler) relay(c *gin.Context, body []byte) {
	resp, err := h.upstream.Forward(c.Request.Context(), c.Request.Method, c.Request.URL.Path,
		c.Request.URL.RawQuery, c.Request.Header, body)
	if err != nil {
		log.Printf("upstream %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "upstream unavailable"})
		return
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		return
	}
	c.Data(resp.StatusCode, resp.ContentType, resp.Body)
}

// withBody validates the JSON body as T and relays the original bytes.
func withBody[T any](h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			badRequest(c, err)
			return
		}
		body, _ := c.Get(gin.BodyBytesKey)
		raw, _ := body.([]byte)
		h.relay(c, raw)
	}
}

// CreateBooking handles POST /bookings.
func (h *Handler) CreateBooking(c *gin.Context) { withBody[bookingRequest](h)(c) }

// CreateUser handles POST /users.
func (h *Handler) CreateUser(c *gin.Context) { withBody[userRequest](h)(c) }

// UpdateUser handles PATCH /users/:userId.
func (h *Handler) UpdateUser(c *gin.Context) { withBody[userPatchRequest](h)(c) }

// CreateItem handles POST /items.
func (h *Handler) CreateItem(c *gin.Context) { withBody[itemRequest](h)(c) }

// UpdateItem handles PATCH /items/:itemId.
func (h *Handler) UpdateItem(c *gin.Context) { withBody[itemPatchRequest](h)(c) }

// AddComment handles POST /items/:itemId/comment.
func (h *Handler) AddComment(c *gin.Context) { withBody[commentRequest](h)(c) }

// CreateRequest handles POST /requests.
func (h *Handler) CreateRequest(c *gin.Context) { withBody[requestCreate](h)(c) }

// PutSubscription handles PUT /push/subscriptions.
func (h *Handler) PutSubscription(c *gin.Context) { withBody[subscriptionRequest](h)(c) }

// DeleteSubscription handles DELETE /push/subscriptions.
func (h *Handler) DeleteSubscription(c *gin.Context) { withBody[deleteSubscriptionRequest](h)(c) }

// requireID rejects requests whose path parameter is not a positive id.
func requireID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := parse.ID(c.Param(param), param); err != nil {
			badRequest(c, err)
			return
		}
		c.Next()
	}
}

// requireState rejects unknown ?state= values before they reach the server.
func requireState() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := booking.ParseState(c.Query("state")); err != nil {
			badRequest(c, err)
			return
		}
		c.Next()
	}
}

// requireApproved rejects a decision without a boolean ?approved= value.
func requireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := parse.Approved(c.Query("approved")); err != nil {
			badRequest(c, err)
			return
		}
		c.Next()
	}
}

// requirePaging rejects a negative ?from= or a non-positive ?size=.
func requirePaging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, _, err := parse.Paging(c.Query("from"), c.Query("size")); err != nil {
			badRequest(c, err)
			return
		}
		c.Next()
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
