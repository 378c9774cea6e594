package gateway

import (
	"github.com/gin-gonic/gin"

	"shareit-backend/internal/mw"
)

// NewRouter mirrors the server routes. Every request passes the per-IP limiter first.
func NewRouter(h *Handler, limiter *mw.IPRateLimiter) *gin.Engine {
	r := gin.Default()
	r.Use(mw.RateLimiter(limiter))
	withUser := mw.RequireUserID()

	bookings := r.Group("/bookings", withUser)
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", requireState(), h.Relay)
		bookings.GET("/owner", requireState(), h.Relay)
		bookings.GET("/:bookingId", requireID("bookingId"), h.Relay)
		bookings.PATCH("/:bookingId", requireID("bookingId"), requireApproved(), h.Relay)
	}

	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.Relay)
		users.GET("/:userId", requireID("userId"), h.Relay)
		users.PATCH("/:userId", requireID("userId"), h.UpdateUser)
		users.DELETE("/:userId", requireID("userId"), h.Relay)
	}

	items := r.Group("/items")
	{
		items.GET("/search", h.Relay)
		items.POST("", withUser, h.CreateItem)
		items.GET("", withUser, h.Relay)
		items.GET("/:itemId", withUser, requireID("itemId"), h.Relay)
		items.PATCH("/:itemId", withUser, requireID("itemId"), h.UpdateItem)
		items.DELETE("/:itemId", withUser, requireID("itemId"), h.Relay)
		items.POST("/:itemId/comment", withUser, requireID("itemId"), h.AddComment)
	}

	requests := r.Group("/requests", withUser)
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.Relay)
		requests.GET("/all", requirePaging(), h.Relay)
		requests.GET("/:requestId", requireID("requestId"), h.Relay)
	}

	push := r.Group("/push")
	{
		push.GET("/vapid_public_key", h.Relay)
		push.GET("/subscriptions", withUser, h.Relay)
		push.PUT("/subscriptions", withUser, h.PutSubscription)
		push.DELETE("/subscriptions", withUser, h.DeleteSubscription)
	}

	return r
}
